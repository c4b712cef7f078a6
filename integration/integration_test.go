package integration_test

import (
	"context"
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/rnconfig"
	"github.com/stretchr/testify/require"
)

const config = `{
  "app_name": "Seed Shop",
  "ios": {"bundle_id": "com.apptile.seedshop"},
  "integrations": {
    "cleverTap": {"cleverTap_id": "A", "cleverTap_token": "B", "cleverTap_region": "eu"},
    "metaAds": {
      "FacebookAppId": "1234567890",
      "FacebookClientToken": "fbtoken",
      "FacebookDisplayName": "Seed Shop",
      "FacebookAutoLogAppEventsEnabled": true,
      "FacebookAdvertiserIDCollectionEnabled": "false"
    },
    "oneSignal": {"onesignal_app_id": "os-app"},
    "moengage": {"appId": "MOE123", "datacenter": 2},
    "klaviyo_company_id": "KLV1",
    "appsflyer": {"devkey": "dev", "appId": "id123"}
  }
}`

func newConfig(t *testing.T, flags ...string) *seed.Config {
	t.Helper()

	cfg := &seed.Config{}
	require.NoError(t, json.Unmarshal([]byte(config), cfg))

	cfg.FeatureFlags = map[string]bool{}
	for _, flag := range flags {
		cfg.FeatureFlags[flag] = true
	}

	return cfg
}

func newRegistry(t *testing.T) *rnconfig.Config {
	t.Helper()

	registry, err := rnconfig.Parse(nil)
	require.NoError(t, err)

	return registry
}

var ctx = context.Background()
