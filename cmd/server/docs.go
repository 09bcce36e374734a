// Package main Nxzen Hackathon API
//
//	@title						Nxzen Hackathon API
//	@version					1.0
//	@description				Registration and roster backend for the Nxzen Hackathon
//
//	@contact.name				Nxzen Hackathon Team
//	@contact.email				hackathon@nxzen.com
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					public
//	@tag.description			Landing page and team registration
//
//	@tag.name					admin
//	@tag.description			Organizer dashboard and roster export
package main
