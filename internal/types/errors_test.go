package types

import (
	"strings"
	"testing"
)

func TestAPIError(t *testing.T) {
	t.Parallel()
	err := &APIError{Errors: []ErrorDetail{
		{Code: "0200", Text: "invalid credentials"},
		{Code: "0700", Text: "no such campaign"},
	}}
	if got := err.Codes(); len(got) != 2 || got[0] != "0200" || got[1] != "0700" {
		t.Fatalf("Codes: %v", got)
	}
	if !err.HasCode("0200") || err.HasCode("0201") {
		t.Fatal("HasCode mismatch")
	}
	msg := err.Error()
	if !strings.Contains(msg, "invalid credentials (code: 0200)") {
		t.Fatalf("message: %s", msg)
	}
}

func TestAPIErrorEmpty(t *testing.T) {
	t.Parallel()
	err := &APIError{}
	if err.Error() == "" {
		t.Fatal("empty error must still have a message")
	}
	if err.HasCode("0200") {
		t.Fatal("no codes expected")
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()
	err := &HTTPError{StatusCode: 502, Body: "upstream unavailable"}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("message: %s", err.Error())
	}
}

func TestParamsClone(t *testing.T) {
	t.Parallel()
	p := Params{"user": "alice"}
	q := p.Clone()
	q["user"] = "bob"
	if p["user"] != "alice" {
		t.Fatal("Clone must not share storage")
	}
}

func TestCredentialsPredicates(t *testing.T) {
	t.Parallel()
	if (Credentials{}).HasToken() || (Credentials{}).HasPassword() {
		t.Fatal("zero credentials should have nothing")
	}
	if !(Credentials{Token: "t"}).HasToken() {
		t.Fatal("token not detected")
	}
	if (Credentials{Username: "u"}).HasPassword() {
		t.Fatal("password requires both username and hash")
	}
	if !(Credentials{Username: "u", HashedPassword: "h"}).HasPassword() {
		t.Fatal("password pair not detected")
	}
}
