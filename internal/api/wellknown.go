package api

import "net/http"

// wellKnownManifest is the static JSON manifest for /.well-known/atolye.json.
const wellKnownManifest = `{
  "name": "Atolye",
  "description": "Learning platform backend for robotics teams",
  "version": "0.1.0",
  "api_base": "/api",
  "auth": {
    "type": "bearer",
    "header": "Authorization"
  },
  "endpoints": {
    "register": "/api/teams/register",
    "login": "/api/teams/login",
    "profile": "/api/teams/profile",
    "materials": "/api/teams/materials",
    "public_materials": "/api/materials/public",
    "messages": "/api/teams/messages",
    "courses": "/api/courses"
  },
  "health": "/health"
}`

// WellKnownHandler returns the static Atolye well-known manifest.
func WellKnownHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(wellKnownManifest))
}
