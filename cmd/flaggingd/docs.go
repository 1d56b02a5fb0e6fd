package main

// General API documentation for swaggo. Run `make swagger-gen` to regenerate.
//
// @title           CRWA Public Flagging API
// @version         1.0
// @description     API for the Charles River Watershed Association's predictive models, and the data used for those models.
//
// @contact.name   Charles River Watershed Association
// @contact.url    https://www.crwa.org
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
