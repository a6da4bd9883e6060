// Package sirius provides typed bindings for the SIRIUS mass-spectrometry
// REST API.
//
// A Client groups the API services (Actuator, Info, Projects, Features and
// Jobs) over one shared transport:
//
//	c, err := sirius.NewClient("http://localhost:8080")
//	if err != nil {
//	    return err
//	}
//	feature, _, err := c.Features.GetAlignedFeature(ctx, "proj1", "feat1",
//	    sirius.AlignedFeatureOptFieldMsData)
//
// Every operation returns the decoded value, the raw *http.Response (body
// still readable) and an error. Required parameters are checked before any
// request is sent; failures are *transport.APIError values for which Local()
// reports true. Server and network failures are *transport.APIError values
// carrying status, reason, headers and body.
//
// Optional field selection, paging and sorting are forwarded verbatim as
// query parameters. An empty optFields list sends no optFields parameter so
// the server applies its defaults.
package sirius
