package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validRoles = map[string]bool{
	"admin": true, "editor": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	if len(c.TMDB.Region) != 2 {
		errs = append(errs, fmt.Sprintf("tmdb.region: must be a two-letter country code, got %q", c.TMDB.Region))
	}

	if c.Session.Secret == "" {
		errs = append(errs, "session.secret: required")
	} else if len(c.Session.Secret) < 32 {
		errs = append(errs, "session.secret: must be at least 32 characters")
	}

	if len(c.Accounts) == 0 {
		errs = append(errs, "accounts: at least one account must be configured")
	}
	seen := make(map[string]bool)
	for i, acct := range c.Accounts {
		if acct.Username == "" {
			errs = append(errs, fmt.Sprintf("accounts[%d].username: required", i))
		} else if seen[acct.Username] {
			errs = append(errs, fmt.Sprintf("accounts[%d].username: duplicate %q", i, acct.Username))
		}
		seen[acct.Username] = true

		if acct.PasswordHash == "" {
			errs = append(errs, fmt.Sprintf("accounts[%d].password_hash: required", i))
		}
		if !validRoles[acct.Role] {
			errs = append(errs, fmt.Sprintf("accounts[%d].role: must be admin or editor; got %q", i, acct.Role))
		}
	}

	return errs
}
