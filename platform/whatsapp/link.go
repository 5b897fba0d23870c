// Package whatsapp builds wa.me deep links and contact QR codes for
// handing an inquiry over to its assigned admin.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"crm_leads_backend/platform/phone"

	qrcode "github.com/skip2/go-qrcode"
)

// Link returns a wa.me chat link for the given phone number with an
// optional prefilled message.
func Link(phoneNumber, message string) string {
	digits := strings.TrimPrefix(phone.NormalizeE164(phoneNumber), "+")
	digits = phone.Digits(digits)
	if digits == "" {
		return ""
	}

	link := "https://wa.me/" + digits
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// GreetingMessage is the prefilled text for a fresh inquiry handover.
func GreetingMessage(contactName string) string {
	return fmt.Sprintf("Halo, saya %s. Saya baru saja mengirim pertanyaan melalui formulir di website.", contactName)
}

// QRPNG renders the wa.me link for the given phone number as a PNG QR
// code of the given pixel size.
func QRPNG(phoneNumber, message string, size int) ([]byte, error) {
	link := Link(phoneNumber, message)
	if link == "" {
		return nil, fmt.Errorf("no dialable phone number")
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}
