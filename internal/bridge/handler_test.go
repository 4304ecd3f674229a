package bridge_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/bridge"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/console"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/logging"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/profiles"
	"github.com/sam-fakhreddine/aws-containers-sub004/models"
	mock_bridge "github.com/sam-fakhreddine/aws-containers-sub004/tests/mock/bridge"
)

func handle(t *testing.T, h *bridge.Handler, request string) map[string]any {
	t.Helper()
	resp := h.Handle(context.Background(), json.RawMessage(request))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestHandleGetProfiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_bridge.NewMockProfileSource(ctrl)
	urls := mock_bridge.NewMockURLSource(ctrl)
	source.EXPECT().List(gomock.Any(), false).Return([]models.Profile{
		{Name: "dev", Kind: models.KindStaticCredentials, HasCredentials: true, Color: "green", Icon: "fingerprint"},
	}, nil)

	h := bridge.NewHandler(source, urls, logging.Discard())
	resp := handle(t, h, `{"action":"getProfiles"}`)

	assert.Equal(t, "profileList", resp["action"])
	list := resp["profiles"].([]any)
	require.Len(t, list, 1)
	profile := list[0].(map[string]any)
	assert.Equal(t, "dev", profile["name"])
	assert.Equal(t, true, profile["has_credentials"])
	assert.Equal(t, "static", profile["kind"])
}

func TestHandleEnrichSSOProfiles(t *testing.T) {
	t.Run("all profiles when no names given", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := mock_bridge.NewMockProfileSource(ctrl)
		urls := mock_bridge.NewMockURLSource(ctrl)
		source.EXPECT().List(gomock.Any(), true).Return(nil, nil)

		h := bridge.NewHandler(source, urls, logging.Discard())
		resp := handle(t, h, `{"action":"enrichSSOProfiles"}`)
		assert.Equal(t, "profileList", resp["action"])
	})

	t.Run("only named sso profiles are re-resolved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		expires := time.Now().Add(time.Hour).UTC()
		source := mock_bridge.NewMockProfileSource(ctrl)
		urls := mock_bridge.NewMockURLSource(ctrl)
		source.EXPECT().List(gomock.Any(), false).Return([]models.Profile{
			{Name: "ssoacct", Kind: models.KindSSOProfile, IsSSO: true},
			{Name: "dev", Kind: models.KindStaticCredentials, HasCredentials: true},
		}, nil)
		source.EXPECT().Resolve(gomock.Any(), "ssoacct").Return(&profiles.Resolved{
			Profile: models.Profile{
				Name: "ssoacct", Kind: models.KindSSOProfile, IsSSO: true,
				HasCredentials: true, Expiration: &expires,
			},
		}, nil)

		h := bridge.NewHandler(source, urls, logging.Discard())
		resp := handle(t, h, `{"action":"enrichSSOProfiles","profileNames":["ssoacct"]}`)

		list := resp["profiles"].([]any)
		require.Len(t, list, 2)
		enriched := list[0].(map[string]any)
		assert.Equal(t, "ssoacct", enriched["name"])
		assert.Equal(t, true, enriched["has_credentials"])
	})
}

func TestHandleOpenProfile(t *testing.T) {
	resolved := &profiles.Resolved{
		Profile: models.Profile{
			Name: "acme-prod", Kind: models.KindStaticCredentials,
			HasCredentials: true, Color: "red", Icon: "briefcase",
		},
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := mock_bridge.NewMockProfileSource(ctrl)
		urls := mock_bridge.NewMockURLSource(ctrl)
		source.EXPECT().Resolve(gomock.Any(), "acme-prod").Return(resolved, nil)
		urls.EXPECT().ConsoleURL(gomock.Any(), resolved, "eu-west-1", "").
			Return("https://signin.aws.amazon.com/federation?Action=login", nil)

		h := bridge.NewHandler(source, urls, logging.Discard())
		resp := handle(t, h, `{"action":"openProfile","profileName":"acme-prod","region":"eu-west-1"}`)

		assert.Equal(t, "consoleUrl", resp["action"])
		assert.Equal(t, "acme-prod", resp["profileName"])
		assert.Equal(t, "red", resp["color"])
		assert.Equal(t, "briefcase", resp["icon"])
		assert.Contains(t, resp["url"], "Action=login")
	})

	t.Run("missing profile name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		h := bridge.NewHandler(mock_bridge.NewMockProfileSource(ctrl), mock_bridge.NewMockURLSource(ctrl), logging.Discard())
		resp := handle(t, h, `{"action":"openProfile"}`)

		assert.Equal(t, "error", resp["action"])
		assert.Contains(t, resp["message"], "Missing profileName")
	})

	t.Run("unknown profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := mock_bridge.NewMockProfileSource(ctrl)
		source.EXPECT().Resolve(gomock.Any(), "ghost").Return(nil, profiles.ErrProfileNotFound)

		h := bridge.NewHandler(source, mock_bridge.NewMockURLSource(ctrl), logging.Discard())
		resp := handle(t, h, `{"action":"openProfile","profileName":"ghost"}`)

		assert.Equal(t, "error", resp["action"])
		assert.Contains(t, resp["message"], "Unknown profile")
	})

	t.Run("credentials unavailable surfaces in message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := mock_bridge.NewMockProfileSource(ctrl)
		urls := mock_bridge.NewMockURLSource(ctrl)
		source.EXPECT().Resolve(gomock.Any(), "ssoacct").Return(resolved, nil)
		urls.EXPECT().ConsoleURL(gomock.Any(), resolved, "", "").
			Return("", fmt.Errorf("%w: no SSO token", console.ErrCredentialsUnavailable))

		h := bridge.NewHandler(source, urls, logging.Discard())
		resp := handle(t, h, `{"action":"openProfile","profileName":"ssoacct"}`)

		assert.Equal(t, "error", resp["action"])
		assert.Contains(t, resp["message"], "no usable credentials")
	})
}

func TestHandleUnknownAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := bridge.NewHandler(mock_bridge.NewMockProfileSource(ctrl), mock_bridge.NewMockURLSource(ctrl), logging.Discard())
	resp := handle(t, h, `{"action":"selfDestruct"}`)

	assert.Equal(t, "error", resp["action"])
	assert.Contains(t, resp["message"], "Unknown action: selfDestruct")
}

func TestHandleMalformedJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := bridge.NewHandler(mock_bridge.NewMockProfileSource(ctrl), mock_bridge.NewMockURLSource(ctrl), logging.Discard())
	resp := handle(t, h, `{"action":`)

	assert.Equal(t, "error", resp["action"])
}
