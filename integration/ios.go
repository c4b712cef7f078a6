package integration

import (
	"github.com/frantjc/seed"
	"github.com/frantjc/seed/ios"
)

const (
	cleverTapPrincipalClass = "CTNotificationServiceExtension"
	defaultPrincipalClass   = "NotificationService"

	notificationTitleKey     = "APPTILE_DEFAULT_NOTIFICATION_TITLE"
	defaultNotificationTitle = "Apptile"

	moEngageTemplateCategory = "MOE_PUSH_TEMPLATE"
)

var (
	facebookKeys = []string{
		"FacebookAppID",
		"FacebookClientToken",
		"FacebookDisplayName",
		"FacebookAutoLogAppEventsEnabled",
		"FacebookAdvertiserIDCollectionEnabled",
	}
	cleverTapKeys = []string{"CleverTapAccountID", "CleverTapToken", "CleverTapRegion"}
	appsFlyerKeys = []string{"APPSFLYER_DEVKEY", "APPSFLYER_APPID"}
	moEngageKeys  = []string{"MOENGAGE_APPID", "MOENGAGE_DATACENTER", "MoEngageAppDelegateProxyEnabled", "MoEngage"}

	moEngageAttributes = []string{
		"UNNotificationExtensionCategory",
		"UNNotificationExtensionInitialContentSizeRatio",
		"UNNotificationExtensionUserInteractionEnabled",
		"UNNotificationExtensionDefaultContentHidden",
	}
)

func resetKeys(doc *ios.Document, keys ...string) {
	for _, key := range keys {
		doc.Reset(key, Sentinel)
	}
}

// IOS is every integration in the order the iOS setup applies them.
var IOS = []Descriptor[*ios.Project]{
	{
		Name:     "Facebook",
		Flag:     seed.FlagFacebook,
		Packages: []string{"react-native-fbsdk-next"},
		Add: func(p *ios.Project, cfg *seed.Config) error {
			metaAds, err := cfg.MetaAds()
			if err != nil {
				return err
			}

			p.Info.Upsert("FacebookAppID", metaAds.ID())
			p.Info.Upsert("FacebookClientToken", metaAds.ClientToken)
			p.Info.Upsert("FacebookDisplayName", metaAds.DisplayName)
			p.Info.Upsert("FacebookAutoLogAppEventsEnabled", bool(metaAds.AutoLogAppEventsEnabled))
			p.Info.Upsert("FacebookAdvertiserIDCollectionEnabled", bool(metaAds.AdvertiserIDCollectionEnabled))

			return nil
		},
		Remove: func(p *ios.Project) error {
			resetKeys(p.Info, facebookKeys...)

			return nil
		},
	},
	{
		Name:     "CleverTap",
		Flag:     seed.FlagCleverTap,
		Packages: []string{"clevertap-react-native"},
		Add: func(p *ios.Project, cfg *seed.Config) error {
			cleverTap, err := cfg.CleverTap()
			if err != nil {
				return err
			}

			p.Info.Upsert("CleverTapAccountID", cleverTap.AccountID)
			p.Info.Upsert("CleverTapToken", cleverTap.Token)
			p.Info.Upsert("CleverTapRegion", cleverTap.Region)

			extension, err := p.ImageNotification.Dict("NSExtension")
			if err != nil {
				return err
			}
			extension.Upsert("NSExtensionPrincipalClass", cleverTapPrincipalClass)

			return nil
		},
		Remove: func(p *ios.Project) error {
			resetKeys(p.Info, cleverTapKeys...)

			if extension, ok := p.ImageNotification.Lookup("NSExtension"); ok {
				if class, _ := extension.Get("NSExtensionPrincipalClass"); class == cleverTapPrincipalClass {
					extension.Upsert("NSExtensionPrincipalClass", defaultPrincipalClass)
				}
			}

			return nil
		},
	},
	{
		Name:     "AppsFlyer",
		Flag:     seed.FlagAppsFlyer,
		Packages: []string{"react-native-appsflyer"},
		Add: func(p *ios.Project, cfg *seed.Config) error {
			appsFlyer, err := cfg.AppsFlyer()
			if err != nil {
				return err
			}

			p.Info.Upsert("APPSFLYER_DEVKEY", appsFlyer.DevKey)
			p.Info.Upsert("APPSFLYER_APPID", appsFlyer.AppID)

			return nil
		},
		Remove: func(p *ios.Project) error {
			resetKeys(p.Info, appsFlyerKeys...)

			return nil
		},
	},
	{
		Name:     "MoEngage",
		Flag:     seed.FlagMoEngage,
		Packages: []string{"react-native-moengage"},
		Add: func(p *ios.Project, cfg *seed.Config) error {
			moEngage, err := cfg.MoEngage()
			if err != nil {
				return err
			}

			p.Info.Upsert("MOENGAGE_APPID", moEngage.AppID)
			p.Info.Upsert("MOENGAGE_DATACENTER", string(moEngage.DataCenter))
			p.Info.Upsert("MoEngageAppDelegateProxyEnabled", false)
			p.Info.Upsert("MoEngage", map[string]any{
				"ENABLE_LOGS":     false,
				"MOENGAGE_APP_ID": moEngage.AppID,
				"DATA_CENTER":     string(moEngage.DataCenter),
				"APP_GROUP_ID":    ios.ApplicationGroup(cfg.IOSBundleID()),
			})

			attrs, err := p.NotificationContent.Dict("NSExtension", "NSExtensionAttributes")
			if err != nil {
				return err
			}
			attrs.Upsert("UNNotificationExtensionCategory", moEngageTemplateCategory)
			attrs.Upsert("UNNotificationExtensionInitialContentSizeRatio", 1.2)
			attrs.Upsert("UNNotificationExtensionUserInteractionEnabled", true)
			attrs.Upsert("UNNotificationExtensionDefaultContentHidden", true)

			return nil
		},
		Remove: func(p *ios.Project) error {
			resetKeys(p.Info, moEngageKeys...)

			if attrs, ok := p.NotificationContent.Lookup("NSExtension", "NSExtensionAttributes"); ok {
				for _, key := range moEngageAttributes {
					attrs.Delete(key)
				}
			}

			return nil
		},
	},
	{
		Name:     "OneSignal",
		Flag:     seed.FlagOneSignal,
		Packages: []string{"react-native-onesignal"},
		Add: func(p *ios.Project, cfg *seed.Config) error {
			oneSignal, err := cfg.OneSignal()
			if err != nil {
				return err
			}

			p.Info.Upsert("ONESIGNAL_APPID", oneSignal.AppID)

			return nil
		},
		Remove: func(p *ios.Project) error {
			resetKeys(p.Info, "ONESIGNAL_APPID")

			return nil
		},
	},
	{
		Name:     "Klaviyo",
		Flag:     seed.FlagKlaviyo,
		Packages: []string{"react-native-klaviyo", "@react-native-community/push-notification-ios"},
		Add: func(p *ios.Project, cfg *seed.Config) error {
			p.ImageNotification.Upsert(notificationTitleKey, cfg.DisplayName())

			return nil
		},
		Remove: func(p *ios.Project) error {
			p.ImageNotification.Upsert(notificationTitleKey, defaultNotificationTitle)

			return nil
		},
	},
	{
		Name:     "Zego",
		Flag:     seed.FlagZego,
		Packages: []string{"zego-express-engine-reactnative"},
		Add: func(p *ios.Project, _ *seed.Config) error {
			p.Info.Upsert("NSCameraUsageDescription", "Access camera for live streaming")
			p.Info.Upsert("NSLocationWhenInUseUsageDescription", "")
			p.Info.Upsert("NSMicrophoneUsageDescription", "Microphone for Live Streaming")
			p.Info.Upsert("NSUserTrackingUsageDescription", "Your privacy matters. We collect usage data to enhance your app experience. Rest assured, your information is handled securely and used solely for improvement")

			return nil
		},
	},
}
