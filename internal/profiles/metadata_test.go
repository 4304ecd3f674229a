package profiles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/profiles"
	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

func TestMetadata(t *testing.T) {
	meta := profiles.NewMetadata(nil)

	tests := []struct {
		profile string
		color   string
		icon    string
	}{
		{profile: "acme-prod", color: "red", icon: "briefcase"},
		{profile: "PRODUCTION-eu", color: "red", icon: "briefcase"},
		{profile: "staging-1", color: "yellow", icon: "circle"},
		{profile: "my-dev", color: "green", icon: "fingerprint"},
		{profile: "qa", color: "turquoise", icon: "circle"},
		{profile: "something-else", color: "blue", icon: "circle"},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			assert.Equal(t, tt.color, meta.Color(tt.profile))
			assert.Equal(t, tt.icon, meta.Icon(tt.profile))
		})
	}
}

func TestMetadataCustomRules(t *testing.T) {
	meta := profiles.NewMetadata([]profiles.MetadataRule{
		{Keywords: []string{"sandbox"}, Color: "purple", Icon: "gift"},
	})

	p := models.Profile{Name: "team-sandbox"}
	meta.Apply(&p)
	assert.Equal(t, "purple", p.Color)
	assert.Equal(t, "gift", p.Icon)

	// Unmatched names always get the deterministic defaults.
	q := models.Profile{Name: "prod"}
	meta.Apply(&q)
	assert.Equal(t, "blue", q.Color)
	assert.Equal(t, "circle", q.Icon)
}
