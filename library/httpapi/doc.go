// Package httpapi exposes the circulation desk, the cart, the admin commands and the read
// models as a JSON API on echo.
//
// The member is identified by the X-Member-ID header, the cart by X-Session-ID (falling back
// to the member id). Business rule rejections map to 400, 404 and 409, a missing session to 401,
// anything else to 500.
package httpapi
