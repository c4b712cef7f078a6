package android

import (
	"errors"
	"fmt"

	"github.com/frantjc/seed/doctree"
)

const (
	AndroidManifestName = "AndroidManifest.xml"

	// PermissionPrefix is prepended to the short permission names
	// taken by UpsertPermission and RemovePermission.
	PermissionPrefix = "android.permission."
	// MessagingEventAction is the intent action that marks a service
	// as a Firebase Cloud Messaging receiver.
	MessagingEventAction = "com.google.firebase.MESSAGING_EVENT"
	// MainActivityName is the android:name of the launcher activity.
	MainActivityName = ".MainActivity"

	attrName  = "android:name"
	attrValue = "android:value"
)

var (
	ErrApplicationNotFound  = errors.New("manifest has no <application> element")
	ErrMainActivityNotFound = errors.New("manifest has no activity named " + MainActivityName)
)

// Manifest is a parsed AndroidManifest.xml.
type Manifest struct {
	*doctree.Document
}

// ParseManifest parses b as an AndroidManifest.xml. A document whose
// root is not <manifest> or that has no <application> is rejected.
func ParseManifest(b []byte) (*Manifest, error) {
	doc, err := doctree.ParseBytes(b)
	if err != nil {
		return nil, named(err, AndroidManifestName)
	}

	if root := doc.Root(); root.Name != "manifest" {
		return nil, &doctree.ParseError{Name: AndroidManifestName, Err: fmt.Errorf("root element is <%s>, not <manifest>", root.Name)}
	} else if root.Child("application") == nil {
		return nil, &doctree.ParseError{Name: AndroidManifestName, Err: ErrApplicationNotFound}
	}

	return &Manifest{doc}, nil
}

func named(err error, name string) error {
	perr := &doctree.ParseError{}
	if errors.As(err, &perr) && perr.Name == "" {
		perr.Name = name
	}

	return err
}

// Application returns the first <application> element.
func (m *Manifest) Application() *doctree.Node {
	return m.Root().Child("application")
}

// MainActivity returns the first activity whose android:name is
// exactly ".MainActivity". Fully qualified names do not match.
func (m *Manifest) MainActivity() (*doctree.Node, error) {
	if activity := doctree.FindByAttribute(m.Application().ChildList("activity"), attrName, MainActivityName); activity != nil {
		return activity, nil
	}

	return nil, ErrMainActivityNotFound
}

func (m *Manifest) Metadata(name string) (string, bool) {
	return doctree.FindByAttribute(m.Application().ChildList("meta-data"), attrName, name).Attr(attrValue)
}

func (m *Manifest) UpsertMetadata(name, value string) {
	doctree.UpsertByAttribute(m.Application().ChildList("meta-data"), attrName, name, doctree.WithAttr(attrValue, value))
}

// ResetMetadata sets the value of existing metadata to sentinel. It
// does nothing if there is no such metadata.
func (m *Manifest) ResetMetadata(name, sentinel string) bool {
	return doctree.ResetByAttribute(m.Application().ChildList("meta-data"), attrName, name, doctree.WithAttr(attrValue, sentinel))
}

// HasPermission reports whether the manifest uses
// android.permission.<name>.
func (m *Manifest) HasPermission(name string) bool {
	return doctree.FindByAttribute(m.Root().ChildList("uses-permission"), attrName, PermissionPrefix+name) != nil
}

func (m *Manifest) UpsertPermission(name string) {
	doctree.UpsertByAttribute(m.Root().ChildList("uses-permission"), attrName, PermissionPrefix+name)
}

func (m *Manifest) RemovePermission(name string) bool {
	return doctree.RemoveByAttribute(m.Root().ChildList("uses-permission"), attrName, PermissionPrefix+name)
}

// Service returns the first service with the given android:name, or nil.
func (m *Manifest) Service(name string) *doctree.Node {
	return doctree.FindByAttribute(m.Application().ChildList("service"), attrName, name)
}

// UpsertService makes the service named name consist of exactly attrs
// and children. An existing service keeps its position but loses
// anything not given here.
func (m *Manifest) UpsertService(name string, attrs []doctree.Attr, children ...*doctree.Node) {
	svc := doctree.UpsertByAttribute(m.Application().ChildList("service"), attrName, name)

	svc.Attrs = append([]doctree.Attr{{Name: attrName, Value: name}}, attrs...)
	svc.Children = nil
	svc.Inline = false
	for _, child := range children {
		svc.Children = append(svc.Children, child.Clone())
	}
}

func (m *Manifest) RemoveService(name string) bool {
	return doctree.RemoveByAttribute(m.Application().ChildList("service"), attrName, name)
}

// MessagingServices returns every service registered for
// MessagingEventAction.
func (m *Manifest) MessagingServices() []*doctree.Node {
	services := []*doctree.Node{}
	for _, svc := range m.Application().ChildList("service").Nodes() {
		if IsMessagingService(svc) {
			services = append(services, svc)
		}
	}

	return services
}

// RemoveMessagingService removes the first service registered for
// MessagingEventAction, whichever SDK it belongs to.
func (m *Manifest) RemoveMessagingService() bool {
	return doctree.RemoveByPredicate(m.Application().ChildList("service"), IsMessagingService)
}

// IsMessagingService reports whether n has an intent-filter with
// the action MessagingEventAction.
func IsMessagingService(n *doctree.Node) bool {
	return n.ChildList("intent-filter").Find(func(filter *doctree.Node) bool {
		return doctree.FindByAttribute(filter.ChildList("action"), attrName, MessagingEventAction) != nil
	}) != nil
}

// MessagingEventIntentFilter returns a new
//
//	<intent-filter>
//	    <action android:name="com.google.firebase.MESSAGING_EVENT"/>
//	</intent-filter>
func MessagingEventIntentFilter() *doctree.Node {
	return &doctree.Node{
		Kind: doctree.ElementNode,
		Name: "intent-filter",
		Children: []*doctree.Node{
			doctree.NewElement("action", doctree.Attr{Name: attrName, Value: MessagingEventAction}),
		},
	}
}
