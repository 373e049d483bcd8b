package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// buildResult adds the LDAPResult components to t, starting in start. It
// returns the states after diagnosticMessage and after the referral list;
// responses with trailing components add them to both.
//
//	LDAPResult ::= SEQUENCE {
//	     resultCode         ENUMERATED { ... },
//	     matchedDN          LDAPDN,
//	     diagnosticMessage  LDAPString,
//	     referral           [3] Referral OPTIONAL }
//
//	Referral ::= SEQUENCE SIZE (1..MAX) OF uri URI
func buildResult(t *table, start State) (afterDiag, afterReferral State) {
	code := t.state("expectMatchedDN", false)
	matched := t.state("expectDiagnosticMessage", false)
	afterDiag = t.state("expectReferral", true)
	referral := t.state("expectReferralURI", false)
	uri := t.state("expectReferralURIOrEnd", true)
	afterReferral = t.state("endReferral", true)

	t.on(start, tagEnumerated, Transition{Next: code, Action: setResultCode})
	t.on(code, tagOctetString, Transition{Next: matched, Action: setMatchedDN})
	t.on(matched, tagOctetString, Transition{
		Next: afterDiag,
		Action: setString("diagnosticMessage", func(c *container, s string) {
			c.result().DiagnosticMessage = s
		}),
	})
	t.on(afterDiag, ctxC(ContextTagReferral), Transition{
		Next:   referral,
		Action: openReferral,
		Resume: afterReferral,
	})
	t.on(referral, tagOctetString, Transition{Next: uri, Action: addReferral})
	t.on(uri, tagOctetString, Transition{Next: uri, Action: addReferral})
	return afterDiag, afterReferral
}

func setResultCode(c *container, t *ber.TLV) error {
	if err := c.claim("resultCode"); err != nil {
		return err
	}
	v, err := t.Int()
	if err != nil {
		return fmt.Errorf("resultCode: %w", err)
	}
	code, known, err := ParseResultCode(v)
	if err != nil {
		return fmt.Errorf("resultCode: %w", err)
	}
	if !known {
		c.warn("resultCode", fmt.Sprintf("undefined result code %d decoded as %s", v, ResultOther))
	}
	c.result().ResultCode = code
	return nil
}

// setMatchedDN drops a matchedDN sent with a result code that does not
// allow one, or fails under PolicyStrict.
func setMatchedDN(c *container, t *ber.TLV) error {
	if err := c.claim("matchedDN"); err != nil {
		return err
	}
	r := c.result()
	dn := t.String()
	if dn != "" && !r.ResultCode.AllowsMatchedDN() {
		msg := fmt.Sprintf("not allowed with result code %s", r.ResultCode)
		if err := c.violation(c.opts.MatchedDNPolicy, "matchedDN", msg); err != nil {
			return err
		}
		dn = ""
	}
	r.MatchedDN = dn
	return nil
}

// openReferral starts the referral list. Referrals are only allowed with
// ResultReferral; otherwise the URIs that follow are dropped, or the
// message fails under PolicyStrict.
func openReferral(c *container, _ *ber.TLV) error {
	if err := c.claim("referral"); err != nil {
		return err
	}
	r := c.result()
	if r.ResultCode == ResultReferral {
		return nil
	}
	msg := fmt.Sprintf("not allowed with result code %s", r.ResultCode)
	if err := c.violation(c.opts.ReferralPolicy, "referral", msg); err != nil {
		return err
	}
	c.dropReferral = true
	return nil
}

func addReferral(c *container, t *ber.TLV) error {
	if c.dropReferral {
		return nil
	}
	r := c.result()
	r.Referral = append(r.Referral, t.String())
	return nil
}

// resultResponse registers a response that is a bare LDAPResult.
func resultResponse(g *grammarSet, env *envelope, op OperationType, newOp func() ProtocolOp) {
	t := g.table(op.String())
	start := t.state("start", false)
	buildResult(t, start)
	env.operation(op, start, newOp, nil, nil)
}
