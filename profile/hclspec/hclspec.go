package hclspec

type Profile struct {
	GameRoot    string     `hcl:"game_root,optional"`
	Version     string     `hcl:"version,optional"`
	Manifest    string     `hcl:"manifest,optional"`
	Java        string     `hcl:"java,optional"`
	InstanceDir string     `hcl:"instance_dir,optional"`
	Username    string     `hcl:"username,optional"`
	MinMemory   string     `hcl:"min_memory,optional"`
	MaxMemory   string     `hcl:"max_memory,optional"`
	Width       int        `hcl:"width,optional"`
	Height      int        `hcl:"height,optional"`
	Offline     bool       `hcl:"offline,optional"`
	Demo        bool       `hcl:"demo,optional"`
	QuickPlay   *QuickPlay `hcl:"quick_play,block"`
}

type QuickPlay struct {
	Mode  string `hcl:"mode,label"`
	Value string `hcl:"value,optional"`
}
