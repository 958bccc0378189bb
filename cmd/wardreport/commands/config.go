package commands

import (
	"wardreport/services/notify"
	"wardreport/services/recommend"
)

type PortalConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ArchiveConfig struct {
	// sqlite file holding the day's fetched payloads; empty disables
	// archiving
	Path string `json:"path"`
}

type Config struct {
	Portal  PortalConfig                     `json:"portal"`
	Archive ArchiveConfig                    `json:"archive"`
	Reports map[string]recommend.GroupConfig `json:"reports"`
	Email   notify.Config                    `json:"email"`
	Smtp    notify.SmtpConfig                `json:"smtp"`
}
