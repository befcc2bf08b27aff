package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"lawvriksh-onboarding/internal/domain"
)

// OTPBuffer holds N single-character digit slots and the index of the focused slot.
// Every slot is either empty or one decimal digit, and the slot count never changes.
type OTPBuffer struct {
	digits []string
	focus  int
}

func NewOTPBuffer(n int) *OTPBuffer {
	if n <= 0 {
		n = 6
	}
	return &OTPBuffer{digits: make([]string, n)}
}

func (b *OTPBuffer) Len() int   { return len(b.digits) }
func (b *OTPBuffer) Focus() int { return b.focus }

// Digits returns a copy of the slots.
func (b *OTPBuffer) Digits() []string {
	out := make([]string, len(b.digits))
	copy(out, b.digits)
	return out
}

// SetDigit stores raw at index when raw is empty or a single decimal digit.
// Anything else, including an out-of-range index, is ignored and reported as false.
func (b *OTPBuffer) SetDigit(index int, raw string) bool {
	if index < 0 || index >= len(b.digits) || !isDigitOrEmpty(raw) {
		return false
	}
	b.digits[index] = raw
	if raw != "" && index < len(b.digits)-1 {
		b.focus = index + 1
	}
	return true
}

// Backspace only moves focus: an already-empty slot at index > 0 retreats to index-1.
func (b *OTPBuffer) Backspace(index int) {
	if index <= 0 || index >= len(b.digits) {
		return
	}
	if b.digits[index] == "" {
		b.focus = index - 1
	}
}

func (b *OTPBuffer) Reset() {
	for i := range b.digits {
		b.digits[i] = ""
	}
	b.focus = 0
}

func (b *OTPBuffer) Joined() string { return strings.Join(b.digits, "") }

// Complete reports whether every slot holds a digit.
func (b *OTPBuffer) Complete() bool { return len(b.Joined()) == len(b.digits) }

func isDigitOrEmpty(s string) bool {
	if s == "" {
		return true
	}
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

type otpBufferJSON struct {
	Digits []string `json:"digits"`
	Focus  int      `json:"focus"`
}

func (b *OTPBuffer) MarshalJSON() ([]byte, error) {
	return json.Marshal(otpBufferJSON{Digits: b.Digits(), Focus: b.focus})
}

// UnmarshalJSON rejects payloads that would break the slot invariants.
func (b *OTPBuffer) UnmarshalJSON(data []byte) error {
	var raw otpBufferJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Digits) == 0 {
		return fmt.Errorf("otp buffer without slots: %w", domain.ErrInvalidArgument)
	}
	for i, d := range raw.Digits {
		if !isDigitOrEmpty(d) {
			return fmt.Errorf("otp slot %d holds %q: %w", i, d, domain.ErrInvalidArgument)
		}
	}
	if raw.Focus < 0 || raw.Focus >= len(raw.Digits) {
		raw.Focus = 0
	}
	b.digits = raw.Digits
	b.focus = raw.Focus
	return nil
}
