package foxess

import (
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// signatureText joins path, token and timestamp with the four-character
// sequence backslash-r-backslash-n. The vendor really does sign the literal
// characters, not CR/LF.
func signatureText(path, token string, timestamp int64) string {
	return path + `\r\n` + token + `\r\n` + strconv.FormatInt(timestamp, 10)
}

func sign(path, token string, timestamp int64) string {
	sum := md5.Sum([]byte(signatureText(path, token, timestamp))) // mandated by the vendor API
	return hex.EncodeToString(sum[:])
}

// authHeaders builds the per-request authentication headers. path must not
// include a query string.
func (s *service) authHeaders(path string) http.Header {
	timestamp := time.Now().UnixMilli()
	h := http.Header{}
	h.Set("token", s.cfg.APIKey)
	h.Set("lang", "en")
	h.Set("timestamp", strconv.FormatInt(timestamp, 10))
	h.Set("Content-Type", "application/json")
	h.Set("signature", sign(path, s.cfg.APIKey, timestamp))
	h.Set("User-Agent", userAgent)
	h.Set("Connection", "close")
	return h
}
