package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// buildBind adds the BindRequest and BindResponse grammars.
func buildBind(g *grammarSet, env *envelope) {
	buildBindRequest(g, env)
	buildBindResponse(g, env)
}

func buildBindRequest(g *grammarSet, env *envelope) {
	t := g.table("BindRequest")
	start := t.state("start", false)
	version := t.state("expectName", false)
	name := t.state("expectAuthentication", false)
	sasl := t.state("expectMechanism", false)
	mechanism := t.state("expectCredentials", true)
	credentials := t.state("end", true)
	authDone := t.state("end", true)

	t.on(start, tagInteger, Transition{
		Next: version,
		Action: setInt("version", MinBindVersion, MaxBindVersion, func(c *container, v int) {
			opAs[*BindRequest](c).Version = v
		}),
	})
	t.on(version, tagOctetString, Transition{
		Next: name,
		Action: setString("name", func(c *container, s string) {
			opAs[*BindRequest](c).Name = s
		}),
	})
	t.on(name, ctx(AuthSimple), Transition{
		Next: authDone,
		Action: setBytes("authentication", func(c *container, b []byte) {
			req := opAs[*BindRequest](c)
			req.AuthMethod = AuthMethodSimple
			req.SimplePassword = b
		}),
	})
	t.on(name, ctxC(AuthSASL), Transition{
		Next:   sasl,
		Resume: authDone,
		Action: func(c *container, _ *ber.TLV) error {
			if err := c.claim("authentication"); err != nil {
				return err
			}
			req := opAs[*BindRequest](c)
			req.AuthMethod = AuthMethodSASL
			req.SASLCredentials = &SASLCredentials{}
			return nil
		},
	})
	t.on(sasl, tagOctetString, Transition{
		Next: mechanism,
		Action: setString("mechanism", func(c *container, s string) {
			opAs[*BindRequest](c).SASLCredentials.Mechanism = s
		}),
	})
	t.on(mechanism, tagOctetString, Transition{
		Next: credentials,
		Action: setBytes("credentials", func(c *container, b []byte) {
			opAs[*BindRequest](c).SASLCredentials.Credentials = b
		}),
	})

	env.operation(ApplicationBindRequest, start, func() ProtocolOp { return &BindRequest{} }, nil, nil)
}

// BindResponse ::= [APPLICATION 1] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	serverSaslCreds    [7] OCTET STRING OPTIONAL }
func buildBindResponse(g *grammarSet, env *envelope) {
	t := g.table("BindResponse")
	start := t.state("start", false)
	creds := t.state("end", true)
	afterDiag, afterReferral := buildResult(t, start)

	setCreds := Transition{
		Next: creds,
		Action: setBytes("serverSaslCreds", func(c *container, b []byte) {
			opAs[*BindResponse](c).ServerSASLCreds = b
		}),
	}
	t.on(afterDiag, ctx(ContextTagServerSASLCreds), setCreds)
	t.on(afterReferral, ctx(ContextTagServerSASLCreds), setCreds)

	env.operation(ApplicationBindResponse, start, func() ProtocolOp { return &BindResponse{} }, nil, nil)
}
