// utils/timeutil.go
package utils

import "time"

// India Standard Time (+05:30)
var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

func NowIST() time.Time { return time.Now().In(istLoc) }

// FormatIST renders t in IST as RFC3339. Zero times render as "".
func FormatIST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(istLoc).Format(time.RFC3339)
}
