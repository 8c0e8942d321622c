// Package settings defines application-level configuration data.
package settings

import (
	"time"

	"github.com/tesso57/learnfeed/internal/domain/engagement"
)

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up        string `yaml:"up" kong:"help='Up key',default='k'"`
	Down      string `yaml:"down" kong:"help='Down key',default='j'"`
	UpPage    string `yaml:"up_page" kong:"help='Page Up key',default='ctrl+u'"`
	DownPage  string `yaml:"down_page" kong:"help='Page Down key',default='ctrl+d'"`
	Top       string `yaml:"top" kong:"help='Top key',default='g'"`
	Bottom    string `yaml:"bottom" kong:"help='Bottom key',default='G'"`
	Open      string `yaml:"open" kong:"help='Open reader key',default='enter,l'"`
	Back      string `yaml:"back" kong:"help='Back key',default='esc,h'"`
	Quit      string `yaml:"quit" kong:"help='Quit key',default='q'"`
	Dashboard string `yaml:"dashboard" kong:"help='Toggle dashboard key',default='d'"`
	Browser   string `yaml:"browser" kong:"help='Open original source key',default='o'"`
	Refresh   string `yaml:"refresh" kong:"help='Refresh dashboard key',default='r'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	Topic  string `yaml:"topic" kong:"help='Topic label color',default='244'"`
	Accent string `yaml:"accent" kong:"help='Accent color',default='205'"`
	Bar    string `yaml:"bar" kong:"help='Interest bar color',default='39'"`
}

// EngagementConfig tunes dwell and reading-session measurement.
type EngagementConfig struct {
	VisibilityThreshold float64       `yaml:"visibility_threshold" kong:"help='Intersection ratio counted as visible',default='0.5'"`
	MinDwell            time.Duration `yaml:"min_dwell" kong:"help='Shortest dwell worth reporting',default='1s'"`
	MinRead             time.Duration `yaml:"min_read" kong:"help='Shortest reading session worth reporting',default='2s'"`
	SkipTime            time.Duration `yaml:"skip_time" kong:"help='Sessions shorter than this may count as skipped',default='5s'"`
	SkipDepth           int           `yaml:"skip_depth" kong:"help='Scroll depth below which short sessions are skipped',default='10'"`
}

// PushConfig controls the live update channel.
type PushConfig struct {
	MaxRetries      int           `yaml:"max_retries" kong:"help='Reconnect attempts before giving up',default='5'"`
	InitialInterval time.Duration `yaml:"initial_interval" kong:"help='First reconnect delay',default='500ms'"`
	MaxInterval     time.Duration `yaml:"max_interval" kong:"help='Longest reconnect delay',default='30s'"`
	StableAfter     time.Duration `yaml:"stable_after" kong:"help='Uptime after which a silent connection counts as healthy',default='10s'"`
}

// Settings represents the application configuration.
type Settings struct {
	APIURL         string           `yaml:"api_url" kong:"name='api-url',help='Backend API base URL',default='http://localhost:8000',env='LEARNFEED_API_URL'"`
	RequestTimeout time.Duration    `yaml:"request_timeout" kong:"help='HTTP request timeout',default='10s',env='LEARNFEED_REQUEST_TIMEOUT'"`
	StateFile      string           `yaml:"state_file" kong:"help='Local state database path',env='LEARNFEED_STATE_FILE'"`
	LogFile        string           `yaml:"log_file" kong:"help='Log file path',env='LEARNFEED_LOG_FILE'"`
	KeyMap         KeyMapConfig     `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme          ThemeConfig      `yaml:"theme" kong:"embed,prefix='theme.'"`
	Engagement     EngagementConfig `yaml:"engagement" kong:"embed,prefix='engagement.'"`
	Push           PushConfig       `yaml:"push" kong:"embed,prefix='push.'"`
}

// TrackerConfig returns the visibility tracking configuration.
func (s Settings) TrackerConfig() engagement.TrackerConfig {
	return engagement.TrackerConfig{
		Threshold: s.Engagement.VisibilityThreshold,
		MinDwell:  s.Engagement.MinDwell,
	}
}

// ReadingRules returns the reading-session reporting rules.
func (s Settings) ReadingRules() engagement.ReadingRules {
	return engagement.ReadingRules{
		MinRead:   s.Engagement.MinRead,
		SkipTime:  s.Engagement.SkipTime,
		SkipDepth: s.Engagement.SkipDepth,
	}
}
