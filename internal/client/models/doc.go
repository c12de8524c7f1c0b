// Package models defines the client-side data types shared by the API
// client, the services and the CLI.
package models
