package dialogue

type yamlScript struct {
	ID    string     `yaml:"id"`
	Title string     `yaml:"title"`
	Start string     `yaml:"start"`
	Nodes []yamlNode `yaml:"nodes"`
}

type yamlNode struct {
	ID      string       `yaml:"id"`
	Speaker string       `yaml:"speaker"`
	Lines   []string     `yaml:"lines"`
	Next    string       `yaml:"next"`
	Choices []yamlChoice `yaml:"choices"`
	Set     []string     `yaml:"set"`
}

type yamlChoice struct {
	Text     string `yaml:"text"`
	Next     string `yaml:"next"`
	Requires string `yaml:"requires"`
}
