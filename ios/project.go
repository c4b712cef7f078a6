package ios

import "path/filepath"

const (
	InfoPlistName = "Info.plist"

	ApplicationGroupsKey = "com.apple.security.application-groups"
)

var (
	InfoPath                            = filepath.Join("ios", "apptileSeed", InfoPlistName)
	ImageNotificationInfoPath           = filepath.Join("ios", "ImageNotification", InfoPlistName)
	NotificationContentInfoPath         = filepath.Join("ios", "NotificationContentExtension", InfoPlistName)
	EntitlementsPath                    = filepath.Join("ios", "apptileSeed", "apptileSeed.entitlements")
	ImageNotificationEntitlementsPath   = filepath.Join("ios", "ImageNotification", "ImageNotification.entitlements")
	NotificationContentEntitlementsPath = filepath.Join("ios", "NotificationContentExtension", "NotificationContentExtension.entitlements")
)

// Project is the set of iOS documents patched in one run: the app's
// Info.plist, the two notification extensions' Info.plists and the
// three targets' entitlements.
type Project struct {
	Info                *Document
	ImageNotification   *Document
	NotificationContent *Document

	Entitlements                    *Document
	ImageNotificationEntitlements   *Document
	NotificationContentEntitlements *Document
}

// Documents pairs every document in p with its path relative to the
// project root, in a fixed order.
func (p *Project) Documents() []ProjectDocument {
	return []ProjectDocument{
		{Path: InfoPath, Document: p.Info},
		{Path: ImageNotificationInfoPath, Document: p.ImageNotification},
		{Path: NotificationContentInfoPath, Document: p.NotificationContent},
		{Path: EntitlementsPath, Document: p.Entitlements},
		{Path: ImageNotificationEntitlementsPath, Document: p.ImageNotificationEntitlements},
		{Path: NotificationContentEntitlementsPath, Document: p.NotificationContentEntitlements},
	}
}

type ProjectDocument struct {
	Path     string
	Document *Document
}

// ApplicationGroup is the app group shared by the app and its
// notification extensions.
func ApplicationGroup(bundleID string) string {
	return "group." + bundleID + ".notification"
}
