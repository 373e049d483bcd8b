package ldap

// buildExtended adds the ExtendedRequest, ExtendedResponse and
// IntermediateResponse grammars. Values with a registered decoder are
// decoded when the operation closes.
func buildExtended(g *grammarSet, env *envelope) {
	buildExtendedRequest(g, env)
	buildExtendedResponse(g, env)
	buildIntermediateResponse(g, env)
}

func buildExtendedRequest(g *grammarSet, env *envelope) {
	t := g.table("ExtendedRequest")
	start := t.state("start", false)
	name := t.state("expectValue", true)
	value := t.state("end", true)

	t.on(start, ctx(ContextTagRequestName), Transition{
		Next: name,
		Action: setOID("requestName", func(c *container, oid string) {
			opAs[*ExtendedRequest](c).Name = oid
		}),
	})
	t.on(name, ctx(ContextTagRequestValue), Transition{
		Next: value,
		Action: setBytes("requestValue", func(c *container, b []byte) {
			req := opAs[*ExtendedRequest](c)
			req.Value = b
			req.HasValue = true
		}),
	})

	env.operation(ApplicationExtendedRequest, start, func() ProtocolOp { return &ExtendedRequest{} }, nil,
		func(c *container) error {
			req := opAs[*ExtendedRequest](c)
			v, err := c.decodeValue(KindExtendedRequest, req.Name, req.Value, req.HasValue)
			if err != nil {
				return err
			}
			req.Decoded = v
			return nil
		})
}

func buildExtendedResponse(g *grammarSet, env *envelope) {
	t := g.table("ExtendedResponse")
	start := t.state("start", false)
	name := t.state("expectValue", true)
	value := t.state("end", true)
	afterDiag, afterReferral := buildResult(t, start)

	setName := Transition{
		Next: name,
		Action: setOID("responseName", func(c *container, oid string) {
			opAs[*ExtendedResponse](c).Name = oid
		}),
	}
	setValue := Transition{
		Next: value,
		Action: setBytes("responseValue", func(c *container, b []byte) {
			resp := opAs[*ExtendedResponse](c)
			resp.Value = b
			resp.HasValue = true
		}),
	}
	for _, s := range []State{afterDiag, afterReferral} {
		t.on(s, ctx(ContextTagResponseName), setName)
		t.on(s, ctx(ContextTagResponseValue), setValue)
	}
	t.on(name, ctx(ContextTagResponseValue), setValue)

	// Responses without a responseName are left for
	// ValueRegistry.DecodeExtendedResponse.
	env.operation(ApplicationExtendedResponse, start, func() ProtocolOp { return &ExtendedResponse{} }, nil,
		func(c *container) error {
			resp := opAs[*ExtendedResponse](c)
			if resp.Name == "" {
				return nil
			}
			v, err := c.decodeValue(KindExtendedResponse, resp.Name, resp.Value, resp.HasValue)
			if err != nil {
				return err
			}
			resp.Decoded = v
			return nil
		})
}

// IntermediateResponse may be empty.
func buildIntermediateResponse(g *grammarSet, env *envelope) {
	t := g.table("IntermediateResponse")
	start := t.state("start", true)
	name := t.state("expectValue", true)
	value := t.state("end", true)

	setValue := Transition{
		Next: value,
		Action: setBytes("responseValue", func(c *container, b []byte) {
			resp := opAs[*IntermediateResponse](c)
			resp.Value = b
			resp.HasValue = true
		}),
	}
	t.on(start, ctx(ContextTagIntermediateName), Transition{
		Next: name,
		Action: setOID("responseName", func(c *container, oid string) {
			opAs[*IntermediateResponse](c).Name = oid
		}),
	})
	t.on(start, ctx(ContextTagIntermediateValue), setValue)
	t.on(name, ctx(ContextTagIntermediateValue), setValue)

	env.operation(ApplicationIntermediateResponse, start, func() ProtocolOp { return &IntermediateResponse{} }, nil,
		func(c *container) error {
			resp := opAs[*IntermediateResponse](c)
			if resp.Name == "" {
				return nil
			}
			v, err := c.decodeValue(KindIntermediateResponse, resp.Name, resp.Value, resp.HasValue)
			if err != nil {
				return err
			}
			resp.Decoded = v
			return nil
		})
}
