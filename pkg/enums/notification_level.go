package enums

// NotificationLevel grades the toast-style feedback emitted by the
// state stores.
type NotificationLevel string

const (
	NotificationLevelSuccess NotificationLevel = "success"
	NotificationLevelInfo    NotificationLevel = "info"
	NotificationLevelError   NotificationLevel = "error"
)

// String implements fmt.Stringer.
func (n NotificationLevel) String() string {
	return string(n)
}
