package kbroker

// response is a complete response frame: the size field, the correlation id
// copied from the request and the API specific body.
type response struct {
	correlationID int32
	body          encoder
}

func (r *response) encode(pe packetEncoder) error {
	pe.push(&lengthField{})
	pe.putInt32(r.correlationID)

	if err := r.body.encode(pe); err != nil {
		return err
	}

	return pe.pop()
}

// encodeResponse builds the frame answering req. Whatever the requested API key,
// the body is an ApiVersions response describing the supported version range.
func encodeResponse(req *Request) ([]byte, error) {
	return encode(&response{
		correlationID: req.header.CorrelationID,
		body:          newApiVersionsResponse(req.header),
	})
}
