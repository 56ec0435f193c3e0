package workspace

import "strings"

// RouteKind names the screen a hash route resolves to.
type RouteKind string

const (
	RoutePublicBooking    RouteKind = "public-booking"
	RouteLeadForm         RouteKind = "public-lead-form"
	RouteFeedback         RouteKind = "feedback"
	RouteSuggestion       RouteKind = "suggestion-form"
	RouteRevision         RouteKind = "revision-form"
	RouteClientPortal     RouteKind = "portal"
	RouteFreelancerPortal RouteKind = "freelancer-portal"
	RouteLogin            RouteKind = "login"
	RouteDashboard        RouteKind = "dashboard"
)

// Route is the result of resolving a location hash.
type Route struct {
	Kind     RouteKind `json:"kind"`
	AccessID string    `json:"accessId,omitempty"`
	Public   bool      `json:"public"`
}

var publicRoutes = []struct {
	prefix string
	kind   RouteKind
}{
	{"#/public-booking", RoutePublicBooking},
	{"#/public-lead-form", RouteLeadForm},
	{"#/feedback", RouteFeedback},
	{"#/suggestion-form", RouteSuggestion},
	{"#/revision-form", RouteRevision},
}

// ResolveRoute maps a location hash to a screen. Public forms and portals
// win over the dashboard; without a session everything else goes to login.
func ResolveRoute(hash string, authenticated bool) Route {
	for _, r := range publicRoutes {
		if strings.HasPrefix(hash, r.prefix) {
			return Route{Kind: r.kind, Public: true}
		}
	}
	if rest, ok := strings.CutPrefix(hash, "#/portal/"); ok {
		return Route{Kind: RouteClientPortal, AccessID: rest, Public: true}
	}
	if rest, ok := strings.CutPrefix(hash, "#/freelancer-portal/"); ok {
		return Route{Kind: RouteFreelancerPortal, AccessID: rest, Public: true}
	}
	if !authenticated {
		return Route{Kind: RouteLogin}
	}
	return Route{Kind: RouteDashboard}
}
