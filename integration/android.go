package integration

import (
	"github.com/frantjc/seed"
	"github.com/frantjc/seed/android"
	"github.com/frantjc/seed/doctree"
)

const (
	cleverTapService = "com.clevertap.android.sdk.pushnotification.fcm.FcmMessageListenerService"
	moEngageService  = "com.moengage.firebase.MoEFireBaseMessagingService"
	klaviyoService   = "com.klaviyo.pushFcm.KlaviyoPushService"
)

var (
	cleverTapMetadata = []string{"CLEVERTAP_ACCOUNT_ID", "CLEVERTAP_TOKEN", "CLEVERTAP_REGION"}
	facebookStrings   = []string{"facebook_app_id", "facebook_client_token"}
	facebookMetadata  = []string{"com.facebook.sdk.ApplicationId", "com.facebook.sdk.ClientToken"}
	moEngageStrings   = []string{"moengage_app_id", "moengage_datacenter"}
)

func exported(b bool) []doctree.Attr {
	v := "false"
	if b {
		v = "true"
	}

	return []doctree.Attr{{Name: "android:exported", Value: v}}
}

// upsertMessagingService makes name the one Firebase Cloud Messaging
// receiver, dropping whichever was registered before it.
func upsertMessagingService(m *android.Manifest, name string, isExported bool) {
	m.RemoveMessagingService()
	m.UpsertService(name, exported(isExported), android.MessagingEventIntentFilter())
}

func resetStrings(s *android.Strings, names ...string) {
	for _, name := range names {
		s.ResetString(name, Sentinel)
	}
}

func resetMetadata(m *android.Manifest, names ...string) {
	for _, name := range names {
		m.ResetMetadata(name, Sentinel)
	}
}

// Android is every integration in the order the Android setup applies
// them. A later messaging service replaces an earlier one.
var Android = []Descriptor[*android.Project]{
	{
		Name:     "CleverTap",
		Flag:     seed.FlagCleverTap,
		Packages: []string{"clevertap-react-native"},
		Add: func(p *android.Project, cfg *seed.Config) error {
			cleverTap, err := cfg.CleverTap()
			if err != nil {
				return err
			}

			p.Manifest.UpsertMetadata("CLEVERTAP_ACCOUNT_ID", cleverTap.AccountID)
			p.Manifest.UpsertMetadata("CLEVERTAP_TOKEN", cleverTap.Token)
			p.Manifest.UpsertMetadata("CLEVERTAP_REGION", cleverTap.Region)
			upsertMessagingService(p.Manifest, cleverTapService, true)
			p.Manifest.UpsertPermission("ACCESS_NETWORK_STATE")

			return nil
		},
		Remove: func(p *android.Project) error {
			resetMetadata(p.Manifest, cleverTapMetadata...)
			p.Manifest.RemoveService(cleverTapService)
			p.Manifest.RemovePermission("ACCESS_NETWORK_STATE")

			return nil
		},
	},
	{
		Name:     "Facebook",
		Flag:     seed.FlagFacebook,
		Packages: []string{"react-native-fbsdk-next"},
		Add: func(p *android.Project, cfg *seed.Config) error {
			metaAds, err := cfg.MetaAds()
			if err != nil {
				return err
			}

			p.Strings.UpsertString("facebook_app_id", metaAds.ID())
			p.Strings.UpsertString("facebook_client_token", metaAds.ClientToken)
			p.Manifest.UpsertMetadata("com.facebook.sdk.ApplicationId", "@string/facebook_app_id")
			p.Manifest.UpsertMetadata("com.facebook.sdk.ClientToken", "@string/facebook_client_token")

			return nil
		},
		Remove: func(p *android.Project) error {
			resetStrings(p.Strings, facebookStrings...)
			resetMetadata(p.Manifest, facebookMetadata...)

			return nil
		},
	},
	{
		Name:     "OneSignal",
		Flag:     seed.FlagOneSignal,
		Packages: []string{"react-native-onesignal"},
		Add: func(p *android.Project, cfg *seed.Config) error {
			oneSignal, err := cfg.OneSignal()
			if err != nil {
				return err
			}

			p.Strings.UpsertString("ONESIGNAL_APPID", oneSignal.AppID)

			return nil
		},
		Remove: func(p *android.Project) error {
			resetStrings(p.Strings, "ONESIGNAL_APPID")

			return nil
		},
	},
	{
		Name:     "MoEngage",
		Flag:     seed.FlagMoEngage,
		Packages: []string{"react-native-moengage"},
		Add: func(p *android.Project, cfg *seed.Config) error {
			moEngage, err := cfg.MoEngage()
			if err != nil {
				return err
			}

			p.Strings.UpsertString("moengage_app_id", moEngage.AppID)
			p.Strings.UpsertString("moengage_datacenter", string(moEngage.DataCenter))
			upsertMessagingService(p.Manifest, moEngageService, true)
			p.Manifest.UpsertPermission("SCHEDULE_EXACT_ALARM")

			return nil
		},
		Remove: func(p *android.Project) error {
			resetStrings(p.Strings, moEngageStrings...)
			p.Manifest.RemoveService(moEngageService)
			p.Manifest.RemovePermission("SCHEDULE_EXACT_ALARM")

			return nil
		},
	},
	{
		Name:     "Klaviyo",
		Flag:     seed.FlagKlaviyo,
		Packages: []string{"react-native-klaviyo", "react-native-push-notification"},
		Add: func(p *android.Project, cfg *seed.Config) error {
			companyID, err := cfg.KlaviyoCompanyID()
			if err != nil {
				return err
			}

			p.Strings.UpsertString("klaviyo_company_id", companyID)
			upsertMessagingService(p.Manifest, klaviyoService, false)

			return nil
		},
		Remove: func(p *android.Project) error {
			resetStrings(p.Strings, "klaviyo_company_id")
			p.Manifest.RemoveService(klaviyoService)

			return nil
		},
	},
	{
		Name:     "AppsFlyer",
		Flag:     seed.FlagAppsFlyer,
		Packages: []string{"react-native-appsflyer"},
	},
	{
		Name:     "Zego",
		Flag:     seed.FlagZego,
		Packages: []string{"zego-express-engine-reactnative"},
	},
}
