package kbroker

// The ApiVersions versions this server negotiates.
const (
	apiVersionsMinVersion int16 = 0
	apiVersionsMaxVersion int16 = 4
)

// negotiateVersion returns the error code a request of the given version is
// answered with.
func negotiateVersion(version int16) KError {
	if version <= apiVersionsMaxVersion {
		return ErrNoError
	}
	return ErrUnsupportedVersion
}

// ApiVersionsResponse describes the supported version range for a single API
// key slot.
type ApiVersionsResponse struct {
	// ErrorCode is ErrUnsupportedVersion when the requested version is above
	// MaxVersion, ErrNoError otherwise.
	ErrorCode KError
	// ApiKey is the API key of the request, echoed verbatim.
	ApiKey int16
	// MinVersion is the minimum supported version, inclusive.
	MinVersion int16
	// MaxVersion is the maximum supported version, inclusive.
	MaxVersion int16
	// ThrottleTimeMs is the duration in milliseconds for which the request was
	// throttled due to a quota violation, or zero if the request did not violate
	// any quota.
	ThrottleTimeMs int32
}

func newApiVersionsResponse(header RequestHeader) *ApiVersionsResponse {
	return &ApiVersionsResponse{
		ErrorCode:  negotiateVersion(header.APIVersion),
		ApiKey:     header.APIKey,
		MinVersion: apiVersionsMinVersion,
		MaxVersion: apiVersionsMaxVersion,
	}
}

func (r *ApiVersionsResponse) encode(pe packetEncoder) error {
	pe.putKError(r.ErrorCode)

	// zero byte ahead of the key block
	pe.putInt8(0)
	pe.putInt16(r.ApiKey)
	pe.putInt16(r.MinVersion)
	pe.putInt16(r.MaxVersion)
	pe.putEmptyTaggedFieldArray()

	pe.putInt32(r.ThrottleTimeMs)
	pe.putEmptyTaggedFieldArray()
	return nil
}

// decode reads a response body back, for clients of this package and tests.
func (r *ApiVersionsResponse) decode(pd packetDecoder) (err error) {
	if r.ErrorCode, err = pd.getKError(); err != nil {
		return err
	}

	if _, err = pd.getInt8(); err != nil {
		return err
	}
	if r.ApiKey, err = pd.getInt16(); err != nil {
		return err
	}
	if r.MinVersion, err = pd.getInt16(); err != nil {
		return err
	}
	if r.MaxVersion, err = pd.getInt16(); err != nil {
		return err
	}
	if _, err = pd.getEmptyTaggedFieldArray(); err != nil {
		return err
	}

	if r.ThrottleTimeMs, err = pd.getInt32(); err != nil {
		return err
	}

	_, err = pd.getEmptyTaggedFieldArray()
	return err
}
