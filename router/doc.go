// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

Routes use Go 1.22+ method-and-pattern routing on the standard ServeMux:

	POST   /communities/{id}/nominations
	GET    /communities/{id}/nominations
	DELETE /communities/{id}/nominations
	POST   /communities/{id}/poll
	POST   /communities/{id}/poll/close
	POST   /communities/{id}/poll/final
	GET    /communities/{id}/poll
	POST   /polls/{id}/votes
	GET    /communities/{id}/winners

All routes are wrapped with request logging middleware.
*/
package router
