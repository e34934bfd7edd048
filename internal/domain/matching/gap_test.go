package matching

import (
	"testing"

	"jobboard/internal/domain/skill"

	"github.com/stretchr/testify/assert"
)

func TestComputeGap_JobOrder(t *testing.T) {
	jobSkills := skill.CompactTokens(skill.ExtractJobSkills([]string{"React", "Node", "SQL"}))
	g := ComputeGap(jobSkills, SkillSet([]string{"sql", "react"}))

	assert.Equal(t, []string{"react", "sql"}, g.Matched)
	assert.Equal(t, []string{"node"}, g.Missing)
}

func TestComputeGap_Duplicates(t *testing.T) {
	g := ComputeGap([]string{"go", "sql", "go", "k8s"}, SkillSet([]string{"go"}))

	assert.Equal(t, []string{"go", "go"}, g.Matched)
	assert.Equal(t, []string{"sql", "k8s"}, g.Missing)
}

func TestComputeGap_Degenerate(t *testing.T) {
	g := ComputeGap(nil, SkillSet([]string{"go"}))
	assert.NotNil(t, g.Matched)
	assert.NotNil(t, g.Missing)
	assert.Empty(t, g.Matched)
	assert.Empty(t, g.Missing)

	g = ComputeGap([]string{"go"}, nil)
	assert.Empty(t, g.Matched)
	assert.Equal(t, []string{"go"}, g.Missing)
}
