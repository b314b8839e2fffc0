package messaging

import "strings"

// MaskPhone hides all but the last three digits: "*** *** 321".
func MaskPhone(number string) string {
	if len(number) <= 3 {
		return number
	}
	return "*** *** " + number[len(number)-3:]
}

// MaskEmail keeps the first three characters of the local part and the
// full domain: "abc***@example.com".
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}

	local, domain := email[:at], email[at+1:]
	if len(local) > 3 {
		local = local[:3]
	}
	return local + "***@" + domain
}
