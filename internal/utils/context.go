// Package utils provides shared utility functions and constants
package utils

// ContextKeyIdentity is the key used to store the session identity in the echo context
const ContextKeyIdentity = "identity"

// CookieName is the name of the session cookie
const CookieName = "IronSeal"

// CSRFCookieName is the name of the cookie carrying the CSRF token
const CSRFCookieName = "csrf"
