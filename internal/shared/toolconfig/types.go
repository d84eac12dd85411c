package toolconfig

type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Preview PreviewConfig `yaml:"preview" mapstructure:"preview"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

type DataConfig struct {
	TerrainFile  string `yaml:"terrain_file" mapstructure:"terrain_file"`
	ScenarioFile string `yaml:"scenario_file" mapstructure:"scenario_file"`
	OutputFile   string `yaml:"output_file" mapstructure:"output_file"`
}

type PreviewConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
