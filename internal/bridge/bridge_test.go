package bridge_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/bridge"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/logging"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/nativemsg"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/settings"
)

func frame(t *testing.T, payload string) []byte {
	t.Helper()
	buf := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)
	return buf
}

func readFrames(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var responses []map[string]any
	for out.Len() > 0 {
		require.GreaterOrEqual(t, out.Len(), 4)
		length := binary.LittleEndian.Uint32(out.Next(4))
		require.GreaterOrEqual(t, out.Len(), int(length))
		var m map[string]any
		require.NoError(t, json.Unmarshal(out.Next(int(length)), &m))
		responses = append(responses, m)
	}
	return responses
}

func testBridge(t *testing.T) (*bridge.Bridge, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	paths := bridge.Paths{
		CredentialsFile: "/home/u/.aws/credentials",
		ConfigFile:      "/home/u/.aws/config",
		SSOCacheDir:     "/home/u/.aws/sso/cache",
		SuppressFile:    "/home/u/.aws/.nosso",
	}
	cfg, err := settings.Default()
	require.NoError(t, err)
	return bridge.New(fs, paths, cfg, logging.Discard()), fs
}

func TestServeEndToEnd(t *testing.T) {
	b, fs := testBridge(t)
	require.NoError(t, afero.WriteFile(fs, "/home/u/.aws/credentials", []byte(
		"[acme-dev]\naws_access_key_id = AKIAX\naws_secret_access_key = secret\n",
	), 0o600))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.aws/config", []byte(
		"[profile acme-prod]\nsso_start_url = https://acme.awsapps.com/start\nsso_region = us-east-1\nsso_account_id = 111122223333\nsso_role_name = Admin\n",
	), 0o600))

	var in bytes.Buffer
	in.Write(frame(t, `{"action":"getProfiles"}`))
	in.Write(frame(t, `{"action":"nonsense"}`))
	var out bytes.Buffer

	require.NoError(t, b.Serve(context.Background(), &in, &out))

	responses := readFrames(t, &out)
	require.Len(t, responses, 2)

	assert.Equal(t, "profileList", responses[0]["action"])
	list := responses[0]["profiles"].([]any)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	second := list[1].(map[string]any)
	assert.Equal(t, "acme-dev", first["name"])
	assert.Equal(t, "static", first["kind"])
	assert.Equal(t, "green", first["color"])
	assert.Equal(t, "acme-prod", second["name"])
	assert.Equal(t, "sso", second["kind"])
	assert.Equal(t, "red", second["color"])

	assert.Equal(t, "error", responses[1]["action"])
}

func TestServeEmptyHomeYieldsEmptyList(t *testing.T) {
	b, _ := testBridge(t)

	var in bytes.Buffer
	in.Write(frame(t, `{"action":"getProfiles"}`))
	var out bytes.Buffer

	require.NoError(t, b.Serve(context.Background(), &in, &out))

	responses := readFrames(t, &out)
	require.Len(t, responses, 1)
	assert.Equal(t, "profileList", responses[0]["action"])
	assert.Empty(t, responses[0]["profiles"])
}

func TestServeOversizedFrameIsFatal(t *testing.T) {
	b, _ := testBridge(t)

	var in bytes.Buffer
	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, 0xFFFFFFFF)
	in.Write(header)
	var out bytes.Buffer

	err := b.Serve(context.Background(), &in, &out)
	require.ErrorIs(t, err, nativemsg.ErrProtocol)
	assert.Zero(t, out.Len(), "no response may be written for an unframeable stream")
}
