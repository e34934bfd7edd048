package textgen

import (
	"fmt"
	"strings"
)

const maxResumeChars = 20000

const coverLetterTemplate = `Write a concise, professional cover letter (under 300 words) for the job below,
based only on facts from the candidate's resume. Do not invent experience.
Return plain text without a subject line or markdown.

### JOB
%s

### RESUME
%s
`

const resumeAnalysisTemplate = `Analyze the resume below%s.
List the candidate's technical skills, tools and frameworks by name, then summarize
strengths and gaps in a few short paragraphs. Return plain text without markdown.
%s
### RESUME
%s
`

func CoverLetterPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(coverLetterTemplate, strings.TrimSpace(jobDescription), clip(resumeText))
}

// ResumeAnalysisPrompt asks for a skills-first analysis; jobDescription may be
// empty for a general review.
func ResumeAnalysisPrompt(resumeText, jobDescription string) string {
	target, job := "", ""
	if jd := strings.TrimSpace(jobDescription); jd != "" {
		target = " against the job description"
		job = "\n### JOB\n" + jd + "\n"
	}
	return fmt.Sprintf(resumeAnalysisTemplate, target, job, clip(resumeText))
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > maxResumeChars {
		return string(r[:maxResumeChars])
	}
	return s
}
