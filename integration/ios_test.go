package integration_test

import (
	_ "embed"
	"testing"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/integration"
	"github.com/frantjc/seed/ios"
	"github.com/frantjc/seed/rnconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	//go:embed testdata/Info.plist
	infoPlist []byte

	//go:embed testdata/ImageNotification.plist
	imageNotificationPlist []byte

	//go:embed testdata/NotificationContent.plist
	notificationContentPlist []byte

	//go:embed testdata/app.entitlements
	entitlements []byte
)

func parsePlist(t *testing.T, b []byte) *ios.Document {
	t.Helper()

	doc, err := ios.Parse(b)
	require.NoError(t, err)

	return doc
}

func newIOSProject(t *testing.T) *ios.Project {
	t.Helper()

	return &ios.Project{
		Info:                            parsePlist(t, infoPlist),
		ImageNotification:               parsePlist(t, imageNotificationPlist),
		NotificationContent:             parsePlist(t, notificationContentPlist),
		Entitlements:                    parsePlist(t, entitlements),
		ImageNotificationEntitlements:   parsePlist(t, entitlements),
		NotificationContentEntitlements: parsePlist(t, entitlements),
	}
}

func iosBytes(t *testing.T, p *ios.Project) string {
	t.Helper()

	out := ""
	for _, doc := range p.Documents() {
		b, err := doc.Document.Bytes()
		require.NoError(t, err)
		out += string(b)
	}

	return out
}

func get(t *testing.T, doc *ios.Document, key string) any {
	t.Helper()

	v, ok := doc.Get(key)
	require.True(t, ok, key)

	return v
}

func principalClass(t *testing.T, p *ios.Project) any {
	t.Helper()

	extension, ok := p.ImageNotification.Lookup("NSExtension")
	require.True(t, ok)
	class, _ := extension.Get("NSExtensionPrincipalClass")

	return class
}

func TestIOSOrder(t *testing.T) {
	names := []string{}
	for _, d := range integration.IOS {
		names = append(names, d.Name)
	}

	assert.Equal(t, []string{"Facebook", "CleverTap", "AppsFlyer", "MoEngage", "OneSignal", "Klaviyo", "Zego"}, names)
}

func TestIOSCleverTap(t *testing.T) {
	var (
		p        = newIOSProject(t)
		registry = newRegistry(t)
	)

	_, err := integration.Apply(ctx, integration.IOS, p, newConfig(t, seed.FlagCleverTap), registry, rnconfig.IOS)
	require.NoError(t, err)

	assert.Equal(t, "A", get(t, p.Info, "CleverTapAccountID"))
	assert.Equal(t, "B", get(t, p.Info, "CleverTapToken"))
	assert.Equal(t, "eu", get(t, p.Info, "CleverTapRegion"))
	assert.Equal(t, "CTNotificationServiceExtension", principalClass(t, p))
	assert.False(t, registry.IsUnlinked("clevertap-react-native", rnconfig.IOS))

	_, err = integration.Apply(ctx, integration.IOS, p, newConfig(t), registry, rnconfig.IOS)
	require.NoError(t, err)

	for _, key := range []string{"CleverTapAccountID", "CleverTapToken", "CleverTapRegion"} {
		assert.Equal(t, integration.Sentinel, get(t, p.Info, key))
	}
	assert.Equal(t, "NotificationService", principalClass(t, p))
	assert.True(t, registry.IsUnlinked("clevertap-react-native", rnconfig.IOS))
}

func TestIOSCleverTapRemoveKeepsOtherPrincipalClass(t *testing.T) {
	p := newIOSProject(t)

	extension, err := p.ImageNotification.Dict("NSExtension")
	require.NoError(t, err)
	extension.Upsert("NSExtensionPrincipalClass", "CustomService")

	_, err = integration.Apply(ctx, integration.IOS, p, newConfig(t), newRegistry(t), rnconfig.IOS)
	require.NoError(t, err)
	assert.Equal(t, "CustomService", principalClass(t, p))
}

func TestIOSMoEngage(t *testing.T) {
	p := newIOSProject(t)

	_, err := integration.Apply(ctx, integration.IOS, p, newConfig(t, seed.FlagMoEngage), newRegistry(t), rnconfig.IOS)
	require.NoError(t, err)

	assert.Equal(t, "MOE123", get(t, p.Info, "MOENGAGE_APPID"))
	assert.Equal(t, "2", get(t, p.Info, "MOENGAGE_DATACENTER"))
	assert.Equal(t, false, get(t, p.Info, "MoEngageAppDelegateProxyEnabled"))

	moEngage, ok := p.Info.Lookup("MoEngage")
	require.True(t, ok)
	appGroup, _ := moEngage.Get("APP_GROUP_ID")
	assert.Equal(t, "group.com.apptile.seedshop.notification", appGroup)

	attrs, ok := p.NotificationContent.Lookup("NSExtension", "NSExtensionAttributes")
	require.True(t, ok)
	category, _ := attrs.Get("UNNotificationExtensionCategory")
	assert.Equal(t, "MOE_PUSH_TEMPLATE", category)
	ratio, _ := attrs.Get("UNNotificationExtensionInitialContentSizeRatio")
	assert.Equal(t, 1.2, ratio)

	_, err = integration.Apply(ctx, integration.IOS, p, newConfig(t), newRegistry(t), rnconfig.IOS)
	require.NoError(t, err)

	for _, key := range []string{"MOENGAGE_APPID", "MOENGAGE_DATACENTER", "MoEngageAppDelegateProxyEnabled", "MoEngage"} {
		assert.Equal(t, integration.Sentinel, get(t, p.Info, key))
	}

	attrs, ok = p.NotificationContent.Lookup("NSExtension", "NSExtensionAttributes")
	require.True(t, ok)
	assert.Empty(t, attrs)

	extension, ok := p.NotificationContent.Lookup("NSExtension")
	require.True(t, ok)
	storyboard, _ := extension.Get("NSExtensionMainStoryboard")
	assert.Equal(t, "MainInterface", storyboard)
}

func TestIOSKlaviyo(t *testing.T) {
	p := newIOSProject(t)

	_, err := integration.Apply(ctx, integration.IOS, p, newConfig(t, seed.FlagKlaviyo), newRegistry(t), rnconfig.IOS)
	require.NoError(t, err)
	assert.Equal(t, "Seed Shop", get(t, p.ImageNotification, "APPTILE_DEFAULT_NOTIFICATION_TITLE"))

	_, err = integration.Apply(ctx, integration.IOS, p, newConfig(t), newRegistry(t), rnconfig.IOS)
	require.NoError(t, err)
	assert.Equal(t, "Apptile", get(t, p.ImageNotification, "APPTILE_DEFAULT_NOTIFICATION_TITLE"))
}

func TestIOSFacebook(t *testing.T) {
	p := newIOSProject(t)

	_, err := integration.Apply(ctx, integration.IOS, p, newConfig(t, seed.FlagFacebook, seed.FlagZego), newRegistry(t), rnconfig.IOS)
	require.NoError(t, err)

	assert.Equal(t, "1234567890", get(t, p.Info, "FacebookAppID"))
	assert.Equal(t, true, get(t, p.Info, "FacebookAutoLogAppEventsEnabled"))
	assert.Equal(t, false, get(t, p.Info, "FacebookAdvertiserIDCollectionEnabled"))
	assert.Equal(t, "Microphone for Live Streaming", get(t, p.Info, "NSMicrophoneUsageDescription"))
}

func TestIOSIdempotence(t *testing.T) {
	cfg := newConfig(t)

	for _, d := range integration.IOS {
		t.Run(d.Name, func(t *testing.T) {
			p := newIOSProject(t)

			if d.Add != nil {
				require.NoError(t, d.Add(p, cfg))
				once := iosBytes(t, p)
				require.NoError(t, d.Add(p, cfg))
				assert.Equal(t, once, iosBytes(t, p))
			}

			if d.Remove != nil {
				require.NoError(t, d.Remove(p))
				once := iosBytes(t, p)
				require.NoError(t, d.Remove(p))
				assert.Equal(t, once, iosBytes(t, p))
			}
		})
	}
}

func TestIOSSymmetry(t *testing.T) {
	cfg := newConfig(t)

	for _, d := range integration.IOS {
		if d.Add == nil || d.Remove == nil {
			continue
		}

		t.Run(d.Name, func(t *testing.T) {
			p := newIOSProject(t)

			require.NoError(t, d.Add(p, cfg))
			require.NoError(t, d.Remove(p))
			removed := iosBytes(t, p)

			for _, key := range []string{"FacebookAppID", "CleverTapAccountID", "APPSFLYER_DEVKEY", "MOENGAGE_APPID", "ONESIGNAL_APPID"} {
				if v, ok := p.Info.Get(key); ok {
					assert.Equal(t, integration.Sentinel, v, key)
				}
			}
			assert.Equal(t, "NotificationService", principalClass(t, p))

			// A second cycle lands on the same documents.
			require.NoError(t, d.Add(p, cfg))
			require.NoError(t, d.Remove(p))
			assert.Equal(t, removed, iosBytes(t, p))
		})
	}
}

func TestIOSPreservesUnknownContent(t *testing.T) {
	var (
		p        = newIOSProject(t)
		registry = newRegistry(t)
		all      = []string{seed.FlagCleverTap, seed.FlagFacebook, seed.FlagOneSignal, seed.FlagMoEngage, seed.FlagKlaviyo, seed.FlagAppsFlyer, seed.FlagZego}
	)

	for _, flags := range [][]string{all, {}, all[:3], all} {
		_, err := integration.Apply(ctx, integration.IOS, p, newConfig(t, flags...), registry, rnconfig.IOS)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 42, get(t, p.Info, "com.apptile.seed.Custom"))
	assert.Equal(t, "$(EXECUTABLE_NAME)", get(t, p.Info, "CFBundleExecutable"))

	ats, ok := p.Info.Lookup("NSAppTransportSecurity")
	require.True(t, ok)
	local, _ := ats.Get("NSAllowsLocalNetworking")
	assert.Equal(t, true, local)

	aps, _ := p.Entitlements.Get("aps-environment")
	assert.Equal(t, "development", aps)
}
