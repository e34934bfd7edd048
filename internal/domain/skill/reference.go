package skill

// referenceEntries is the built-in vocabulary. Order matters: extracted skills
// are reported in this order.
var referenceEntries = []Entry{
	{Aliases: []string{"javascript", "js", "ecmascript", "es6"}},
	{Aliases: []string{"typescript", "ts"}},
	{Aliases: []string{"python", "py", "python3"}},
	{Aliases: []string{"java", "jdk", "jvm"}},
	{Aliases: []string{"go", "golang"}},
	{Aliases: []string{"rust"}},
	{Aliases: []string{"c++", "cpp"}},
	{Aliases: []string{"csharp", "dotnet", "net"}},
	{Aliases: []string{"php"}},
	{Aliases: []string{"ruby"}},
	{Aliases: []string{"kotlin"}},
	{Aliases: []string{"swift"}},
	{Aliases: []string{"scala"}},
	{Aliases: []string{"react", "reactjs"}},
	{Aliases: []string{"angular", "angularjs"}},
	{Aliases: []string{"vue", "vuejs"}},
	{Aliases: []string{"svelte"}},
	{Aliases: []string{"html", "html5"}},
	{Aliases: []string{"css", "css3", "scss", "sass"}},
	{Aliases: []string{"tailwind", "tailwindcss"}},
	{Aliases: []string{"node", "nodejs"}},
	{Aliases: []string{"express", "expressjs"}},
	{Aliases: []string{"nest", "nestjs"}},
	{Aliases: []string{"django"}},
	{Aliases: []string{"flask"}},
	{Aliases: []string{"fastapi"}},
	{Aliases: []string{"spring", "springboot"}},
	{Aliases: []string{"rails"}},
	{Aliases: []string{"laravel"}},
	{Aliases: []string{"graphql"}},
	{Aliases: []string{"sql"}},
	{Aliases: []string{"postgresql", "postgres", "psql"}},
	{Aliases: []string{"mysql", "mariadb"}},
	{Aliases: []string{"mongodb", "mongo"}},
	{Aliases: []string{"redis"}},
	{Aliases: []string{"elasticsearch", "elastic"}},
	{Aliases: []string{"kafka"}},
	{Aliases: []string{"rabbitmq"}},
	{Aliases: []string{"aws"}},
	{Aliases: []string{"gcp", "googlecloud"}},
	{Aliases: []string{"azure"}},
	{Aliases: []string{"docker"}},
	{Aliases: []string{"kubernetes", "k8s"}},
	{Aliases: []string{"terraform"}},
	{Aliases: []string{"linux", "unix"}},
	{Aliases: []string{"git", "github", "gitlab"}},
	{Aliases: []string{"ci", "cicd", "jenkins"}},
	{Aliases: []string{"machinelearning", "ml"}},
	{Aliases: []string{"tensorflow"}},
	{Aliases: []string{"pytorch"}},
	{Aliases: []string{"pandas"}},
	{Aliases: []string{"figma"}},
	{Aliases: []string{"photoshop"}},
	{Aliases: []string{"excel"}},
	{Aliases: []string{"seo"}},
	{Aliases: []string{"agile", "scrum"}},
}
