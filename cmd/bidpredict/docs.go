package main

// General API documentation for swaggo. Run `swag init -g cmd/bidpredict/docs.go` to regenerate docs/.
//
// @title           bidpredict API
// @version         1.0
// @description     Placeholder winning-bid estimates for federal Health IT contracts.
//
// @contact.name   federal-bid-prediction maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
