package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ProfileMetadataKey is the key-value store slot holding the serialized profile.
const ProfileMetadataKey = "profile"
