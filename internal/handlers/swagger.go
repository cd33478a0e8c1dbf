package handlers

// @title Visit Counter API
// @version 1.0
// @description Portfolio visit counter. POST records a visit, every other method reads the current count.

// @contact.name API Support
// @contact.url https://github.com/your-org/visit-counter-api

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @tag.name visits
// @tag.description Visit counter operations
