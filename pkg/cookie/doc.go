// Package cookie writes plain cookies with consistent attributes.
//
//	m := cookie.New(cookie.WithSecure(true), cookie.WithHTTPOnly(false))
//	m.Set(w, "lang", "en", 365*24*60*60)
//	lang, err := m.Get(r, "lang") // cookie.ErrNotFound when absent
package cookie
