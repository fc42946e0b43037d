// Package docs registers the OpenAPI description of the laptrack API.
//
// @title           laptrack API
// @version         1.0.0
// @description     Laptop inventory, assignment, maintenance and issue tracking.
// @description
// @description     ## Authentication
// @description     Log in at /api/auth/login and send the access token as
// @description     `Authorization: Bearer <token>`. Access tokens are short lived;
// @description     exchange the refresh token at /api/auth/refresh.
// @description
// @description     ## Error Handling
// @description     All errors follow RFC 7807 Problem Details (application/problem+json).
//
// @contact.name   laptrack maintainers
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT access token. Format: "Bearer {token}"
//
// @tag.name system
// @tag.description Health checks
//
// @tag.name auth
// @tag.description Accounts, tokens and 2FA
//
// @tag.name laptops
// @tag.name employees
// @tag.name assignments
// @tag.name maintenance
// @tag.name issues
package docs
