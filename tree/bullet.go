package tree

// Bullet is the marker kind of a list item.
type Bullet string

const (
	BulletPlain     Bullet = "*"
	BulletUnchecked Bullet = "unchecked-box"
	BulletChecked   Bullet = "checked-box"
	BulletCrossed   Bullet = "xchecked-box"
)

// Valid reports whether b is a known bullet kind.
func (b Bullet) Valid() bool {
	switch b {
	case BulletPlain, BulletUnchecked, BulletChecked, BulletCrossed:
		return true
	default:
		return false
	}
}

// Checkbox reports whether b renders as a box rather than a bullet.
func (b Bullet) Checkbox() bool {
	return b == BulletUnchecked || b == BulletChecked || b == BulletCrossed
}
