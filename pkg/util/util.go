package util

import (
	"math/rand"
	"strings"
)

const randCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandString returns a random alphanumeric string of length n,
// used as a task id suffix.
func GenerateRandString(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(randCharset[rand.Intn(len(randCharset))])
	}
	return b.String()
}

// SanitizePathName strips characters that break file paths or downstream
// ffmpeg invocations from a name.
func SanitizePathName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "",
		"\"", "",
		"<", "_",
		">", "_",
		"|", "_",
		"=", "",
		" ", "_",
	)
	return replacer.Replace(name)
}
