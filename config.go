package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/frantjc/seed/internal/seedregexp"
	xslice "github.com/frantjc/x/slice"
	xstrings "github.com/frantjc/x/strings"
	"github.com/google/uuid"
	"golang.org/x/mod/semver"
)

const (
	ConfigName = "apptile.config.json"

	DefaultAppName     = "Apptile Seed"
	DefaultBundleID    = "com.apptile.apptilepreviewdemo"
	DefaultVersion     = "1.0.0"
	DefaultBuildNumber = "1"
)

// Feature flags.
const (
	FlagCleverTap = "ENABLE_CLEVERTAP"
	FlagFacebook  = "ENABLE_FBSDK"
	FlagOneSignal = "ENABLE_ONESIGNAL"
	FlagMoEngage  = "ENABLE_MOENGAGE"
	FlagKlaviyo   = "ENABLE_KLAVIYO"
	FlagAppsFlyer = "ENABLE_APPSFLYER"
	FlagZego      = "ENABLE_LIVELY"
)

// Asset classes.
const (
	AssetClassIcon                       = "icon"
	AssetClassSplash                     = "splash"
	AssetClassAndroidFirebaseServiceFile = "androidFirebaseServiceFile"
)

// Config is apptile.config.json. It is read once per run and not
// modified afterwards.
type Config struct {
	AppName            string                     `json:"app_name,omitempty"`
	AppID              string                     `json:"APP_ID,omitempty"`
	BackendURL         string                     `json:"APPTILE_BACKEND_URL,omitempty"`
	AppConfigServerURL string                     `json:"APPCONFIG_SERVER_URL,omitempty"`
	SDKPath            string                     `json:"SDK_PATH,omitempty"`
	FeatureFlags       map[string]bool            `json:"feature_flags,omitempty"`
	Integrations       map[string]json.RawMessage `json:"integrations,omitempty"`
	Android            *Platform                  `json:"android,omitempty"`
	IOS                *Platform                  `json:"ios,omitempty"`
	Assets             []Asset                    `json:"assets,omitempty"`
}

type Platform struct {
	BundleID    string `json:"bundle_id,omitempty"`
	Version     Scalar `json:"version,omitempty"`
	BuildNumber Scalar `json:"build_number,omitempty"`
	TeamID      string `json:"team_id,omitempty"`
}

type Asset struct {
	AssetClass string `json:"assetClass,omitempty"`
	URL        string `json:"url,omitempty"`
	FileName   string `json:"fileName,omitempty"`
}

// Scalar is a JSON string or number, held as its string form.
// Build numbers and data centers show up as either.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = Scalar(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected a string or number, got %s", b)
	}

	*s = Scalar(num.String())
	return nil
}

// Bool is a JSON boolean that also accepts "true"/"false" strings.
type Bool bool

func (b *Bool) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = Bool(v)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("expected a boolean, got %s", data)
	}

	v, err := strconv.ParseBool(str)
	if err != nil {
		return fmt.Errorf("expected a boolean, got %s", data)
	}

	*b = Bool(v)
	return nil
}

type CleverTap struct {
	AccountID string `json:"cleverTap_id"`
	Token     string `json:"cleverTap_token"`
	Region    string `json:"cleverTap_region"`
}

type MetaAds struct {
	// AppID and AppIDAlt are the two spellings of the Facebook app ID
	// found in configs. Use ID.
	AppID                         string `json:"FacebookAppID"`
	AppIDAlt                      string `json:"FacebookAppId"`
	ClientToken                   string `json:"FacebookClientToken"`
	DisplayName                   string `json:"FacebookDisplayName"`
	AutoLogAppEventsEnabled       Bool   `json:"FacebookAutoLogAppEventsEnabled"`
	AdvertiserIDCollectionEnabled Bool   `json:"FacebookAdvertiserIDCollectionEnabled"`
}

func (m *MetaAds) ID() string {
	return xslice.Coalesce(m.AppID, m.AppIDAlt)
}

type OneSignal struct {
	AppID string `json:"onesignal_app_id"`
}

type MoEngage struct {
	AppID      string `json:"appId"`
	DataCenter Scalar `json:"datacenter"`
}

type AppsFlyer struct {
	DevKey string `json:"devkey"`
	AppID  string `json:"appId"`
}

// Integration payload keys under "integrations".
const (
	IntegrationCleverTap = "cleverTap"
	IntegrationMetaAds   = "metaAds"
	IntegrationOneSignal = "oneSignal"
	IntegrationMoEngage  = "moengage"
	IntegrationKlaviyo   = "klaviyo_company_id"
	IntegrationAppsFlyer = "appsflyer"
)

// ErrIntegrationNotConfigured is returned when an enabled
// integration has no payload.
var ErrIntegrationNotConfigured = errors.New("integration not configured")

func integration[T any](c *Config, key string) (*T, error) {
	raw, ok := c.Integrations[key]
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("integrations.%s: %w", key, ErrIntegrationNotConfigured)
	}

	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("decode integrations.%s: %w", key, err)
	}

	return v, nil
}

func (c *Config) CleverTap() (*CleverTap, error) {
	return integration[CleverTap](c, IntegrationCleverTap)
}

func (c *Config) MetaAds() (*MetaAds, error) {
	return integration[MetaAds](c, IntegrationMetaAds)
}

func (c *Config) OneSignal() (*OneSignal, error) {
	return integration[OneSignal](c, IntegrationOneSignal)
}

func (c *Config) MoEngage() (*MoEngage, error) {
	return integration[MoEngage](c, IntegrationMoEngage)
}

func (c *Config) AppsFlyer() (*AppsFlyer, error) {
	return integration[AppsFlyer](c, IntegrationAppsFlyer)
}

// KlaviyoCompanyID is the only Klaviyo setting and is a plain string.
func (c *Config) KlaviyoCompanyID() (string, error) {
	id, err := integration[string](c, IntegrationKlaviyo)
	if err != nil {
		return "", err
	}

	return *id, nil
}

// Enabled reports whether the feature flag is true. A missing flag is
// false.
func (c *Config) Enabled(flag string) bool {
	return c.FeatureFlags[flag]
}

// Asset returns the first asset of the given class, if any.
func (c *Config) Asset(assetClass string) (*Asset, bool) {
	for i := range c.Assets {
		if c.Assets[i].AssetClass == assetClass && c.Assets[i].URL != "" {
			return &c.Assets[i], true
		}
	}

	return nil, false
}

// DisplayName is app_name, or DefaultAppName if it is not set.
func (c *Config) DisplayName() string {
	return xslice.Coalesce(c.AppName, DefaultAppName)
}

// IOSBundleID is ios.bundle_id, or DefaultBundleID if it is not set.
func (c *Config) IOSBundleID() string {
	if c.IOS == nil {
		return DefaultBundleID
	}

	return xslice.Coalesce(c.IOS.BundleID, DefaultBundleID)
}

// LoadConfig reads and validates the config at name.
func LoadConfig(name string) (*Config, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	c := &Config{}
	if err = json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	if err = ValidateConfig(c); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return c, nil
}

// ValidateConfig checks the identifiers in c, returning every problem
// found joined together.
func ValidateConfig(c *Config) error {
	errs := []error{}

	if c.AppID != "" {
		if _, err := uuid.Parse(c.AppID); err != nil {
			errs = append(errs, fmt.Errorf("invalid APP_ID %s", c.AppID))
		}
	}

	for name, p := range map[string]*Platform{"android": c.Android, "ios": c.IOS} {
		if p == nil {
			continue
		}

		if p.BundleID != "" && !seedregexp.IsBundleID(p.BundleID) {
			errs = append(errs, fmt.Errorf("invalid %s.bundle_id %s", name, p.BundleID))
		}

		if p.Version != "" && !semver.IsValid(xstrings.EnsurePrefix(string(p.Version), "v")) {
			errs = append(errs, fmt.Errorf("invalid %s.version %s", name, p.Version))
		}

		if p.BuildNumber != "" && !seedregexp.IsBuildNumber(string(p.BuildNumber)) {
			errs = append(errs, fmt.Errorf("invalid %s.build_number %s", name, p.BuildNumber))
		}

		if p.TeamID != "" && !seedregexp.IsTeamID(p.TeamID) {
			errs = append(errs, fmt.Errorf("invalid %s.team_id %s", name, p.TeamID))
		}
	}

	return errors.Join(errs...)
}
