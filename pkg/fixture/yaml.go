package fixture

// yamlFixture is the on-disk form of a Fixture. Exactly one of Input and
// InputFile is set; InputFile is relative to the fixture file.
type yamlFixture struct {
	Name        string            `yaml:"name"`
	Puzzle      string            `yaml:"puzzle"`
	Description string            `yaml:"description,omitempty"`
	Input       string            `yaml:"input,omitempty"`
	InputFile   string            `yaml:"input_file,omitempty"`
	Expect      []yamlExpectation `yaml:"expect"`
}

type yamlExpectation struct {
	Part   int    `yaml:"part"`
	Answer string `yaml:"answer"`
}

// yamlFixturesFile is the top-level structure of a fixtures YAML file.
type yamlFixturesFile struct {
	Fixtures []yamlFixture `yaml:"fixtures"`
}
