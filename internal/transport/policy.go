package transport

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// AuthFailurePolicy is the single global reaction to a 401. It runs for every
// rejected request whose method and path are not exempt.
type AuthFailurePolicy struct {
	// Exempt matches requests whose 401 must fail quietly
	Exempt func(method, path string) bool
	// Reject clears credentials and navigates away
	Reject func(ctx context.Context)
}

// Handle applies the policy to a request that came back 401
func (p *AuthFailurePolicy) Handle(ctx context.Context, method, path string) {
	if p == nil || p.Reject == nil {
		return
	}
	if p.Exempt != nil && p.Exempt(method, path) {
		log.Printf("AUTH_REJECTED_EXEMPT: method=%s path=%s", method, path)
		return
	}
	log.Printf("AUTH_REJECTED: method=%s path=%s action=expire_session", method, path)
	p.Reject(ctx)
}

// ExemptRequests matches any of the given "METHOD /path" pairs exactly
func ExemptRequests(requests ...string) func(method, path string) bool {
	set := make(map[string]struct{}, len(requests))
	for _, r := range requests {
		set[normalize(r)] = struct{}{}
	}
	return func(method, path string) bool {
		_, ok := set[normalize(method+" "+path)]
		return ok
	}
}

// IdentityProbe is the request exempt from the global 401 redirect
const IdentityProbe = http.MethodGet + " " + domain.PathMe

func normalize(r string) string {
	method, path, _ := strings.Cut(strings.TrimSpace(r), " ")
	path = strings.TrimSpace(path)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return strings.ToUpper(method) + " /" + strings.Trim(path, "/")
}
