package profiles

import (
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/awsfiles"
	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

// Classify maps one profile name's parsed inputs to a profile kind. It is
// a pure function over the parse results: no I/O, no hidden dispatch
// order. cfg and creds are nil when the respective file has no section for
// the name.
//
// A profile with both a non-SSO config section and a credentials entry is
// treated as static: direct credentials take precedence over assuming a
// role through them. With suppression active an SSO profile degrades to
// its credentials entry if one exists, and is excluded otherwise.
func Classify(cfg *awsfiles.ConfigSection, creds *awsfiles.StaticCredentials, suppressSSO bool) models.ProfileKind {
	hasKeys := creds != nil && creds.HasKeys()

	if cfg != nil && cfg.IsSSO() {
		if suppressSSO {
			if hasKeys {
				return models.KindStaticCredentials
			}
			return models.KindUnknown
		}
		return models.KindSSOProfile
	}

	if hasKeys {
		return models.KindStaticCredentials
	}

	if cfg != nil && cfg.RoleARN != "" {
		return models.KindRoleAssumption
	}

	if cfg != nil {
		// A config-only section without credentials of its own is only
		// reachable through some other identity.
		return models.KindRoleAssumption
	}

	return models.KindUnknown
}
