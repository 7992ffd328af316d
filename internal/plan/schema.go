package plan

// Plan is an action file: a named, ordered list of steps.
type Plan struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Vars        map[string]string `yaml:"vars,omitempty"`
	Steps       []Step            `yaml:"steps"`

	// BaseDir anchors relative template paths; set by LoadFile.
	BaseDir string `yaml:"-"`
}

// Step defines a single action.
// Exactly one of Var, Template, or Exec must be set.
type Step struct {
	ID          string        `yaml:"id,omitempty"`
	Description string        `yaml:"name,omitempty"`
	Var         *VarStep      `yaml:"var,omitempty"`
	Template    *TemplateStep `yaml:"template,omitempty"`
	Exec        []string      `yaml:"exec,omitempty"`
}

// VarStep sets a template variable.
type VarStep struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// TemplateStep renders Source into Dest.
type TemplateStep struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
}
