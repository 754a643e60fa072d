package funcinfo

// Optional is a string that may be missing. A missing value is different
// from a present empty string, so `x=""` and `x` stay distinguishable.
type Optional struct {
	value string
	ok    bool
}

// Absent is the missing Optional.
var Absent = Optional{}

// Present wraps s as a present value.
func Present(s string) Optional {
	return Optional{value: s, ok: true}
}

// Value returns the wrapped string and whether it is present.
func (o Optional) Value() (string, bool) {
	return o.value, o.ok
}

// IsPresent reports whether a value is set.
func (o Optional) IsPresent() bool {
	return o.ok
}

// Or returns the value, or fallback when absent.
func (o Optional) Or(fallback string) string {
	if !o.ok {
		return fallback
	}
	return o.value
}

func (o Optional) String() string {
	if !o.ok {
		return "<absent>"
	}
	return o.value
}
