package tapatalk

import "golang.org/x/oauth2"

// Endpoint returns the flow's authorization and token endpoints as an
// oauth2.Endpoint, for callers who want to drive a golang.org/x/oauth2
// Config against the same provider.
func (f *Flow) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:  f.authBaseURL + authPath,
		TokenURL: f.tokenURL,
	}
}
