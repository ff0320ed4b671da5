// Package service contains the application services that sit between the
// HTTP handlers and the stores: task lifecycle with ownership enforcement,
// and user profile/credential maintenance.
package service
