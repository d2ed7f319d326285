package audit

import (
	"net/http"
	"strings"
)

type verbs struct {
	create, update, remove string
}

var resources = map[string]verbs{
	"providers":         {"Creating new provider", "Updating provider information", "Deleting provider"},
	"services":          {"Creating new service", "Updating existing service", "Deleting service"},
	"guests":            {"Creating new guest", "Updating guest information", "Deleting guest"},
	"discounts":         {"Creating new discount", "Updating discount", "Deleting discount"},
	"billings":          {"Creating new billing", "Updating billing", "Deleting billing"},
	"sharedexperiences": {"Creating new shared experience", "Updating shared experience", "Deleting shared experience"},
}

// Describe names the operation behind a request, e.g. "Creating new
// provider" for POST /api/providers.
func Describe(method, path string) string {
	segs := strings.Split(strings.Trim(strings.ToLower(path), "/"), "/")
	if len(segs) > 0 && segs[0] == "api" {
		segs = segs[1:]
	}
	method = strings.ToUpper(method)

	if len(segs) >= 2 && segs[0] == "auth" {
		switch segs[1] {
		case "login":
			return "User login"
		case "register":
			return "User registration"
		}
	}

	if len(segs) >= 4 && method == http.MethodPost {
		switch {
		case segs[0] == "sharedexperiences" && segs[2] == "guests":
			return "Adding guest to shared experience"
		case segs[0] == "sharedexperiences" && segs[2] == "services":
			return "Adding service to shared experience"
		case segs[0] == "services" && segs[2] == "guests":
			return "Adding guest to service"
		}
	}

	var v verbs
	ok := false
	if len(segs) > 0 {
		v, ok = resources[segs[0]]
	}
	if !ok {
		v = verbs{"Creating new resource", "Updating existing resource", "Deleting resource"}
	}

	switch method {
	case http.MethodPost:
		return v.create
	case http.MethodPut:
		return v.update
	case http.MethodDelete:
		return v.remove
	}

	return "Performing operation"
}
