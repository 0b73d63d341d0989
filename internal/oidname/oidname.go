// Package oidname resolves well-known object identifiers to descriptive
// names. The table covers the identifiers commonly found in X.509
// certificates, CRLs, PKCS and CMS structures.
package oidname

import (
	"codello.dev/asn1tree/oid"
)

type entry struct {
	oid  oid.ObjectIdentifier
	name string
}

// X.500 attribute types
var attributes = []entry{
	{oid.ObjectIdentifier{2, 5, 4, 3}, "commonName"},
	{oid.ObjectIdentifier{2, 5, 4, 4}, "surname"},
	{oid.ObjectIdentifier{2, 5, 4, 5}, "serialNumber"},
	{oid.ObjectIdentifier{2, 5, 4, 6}, "countryName"},
	{oid.ObjectIdentifier{2, 5, 4, 7}, "localityName"},
	{oid.ObjectIdentifier{2, 5, 4, 8}, "stateOrProvinceName"},
	{oid.ObjectIdentifier{2, 5, 4, 9}, "streetAddress"},
	{oid.ObjectIdentifier{2, 5, 4, 10}, "organizationName"},
	{oid.ObjectIdentifier{2, 5, 4, 11}, "organizationalUnitName"},
	{oid.ObjectIdentifier{2, 5, 4, 12}, "title"},
	{oid.ObjectIdentifier{2, 5, 4, 42}, "givenName"},
	{oid.ObjectIdentifier{0, 9, 2342, 19200300, 100, 1, 25}, "domainComponent"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 1}, "emailAddress"},
}

// Certificate extensions (RFC 5280)
var extensions = []entry{
	{oid.ObjectIdentifier{2, 5, 29, 14}, "subjectKeyIdentifier"},
	{oid.ObjectIdentifier{2, 5, 29, 15}, "keyUsage"},
	{oid.ObjectIdentifier{2, 5, 29, 17}, "subjectAltName"},
	{oid.ObjectIdentifier{2, 5, 29, 18}, "issuerAltName"},
	{oid.ObjectIdentifier{2, 5, 29, 19}, "basicConstraints"},
	{oid.ObjectIdentifier{2, 5, 29, 20}, "cRLNumber"},
	{oid.ObjectIdentifier{2, 5, 29, 21}, "cRLReason"},
	{oid.ObjectIdentifier{2, 5, 29, 30}, "nameConstraints"},
	{oid.ObjectIdentifier{2, 5, 29, 31}, "cRLDistributionPoints"},
	{oid.ObjectIdentifier{2, 5, 29, 32}, "certificatePolicies"},
	{oid.ObjectIdentifier{2, 5, 29, 35}, "authorityKeyIdentifier"},
	{oid.ObjectIdentifier{2, 5, 29, 37}, "extKeyUsage"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 1, 1}, "authorityInfoAccess"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 1}, "serverAuth"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 2}, "clientAuth"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 3}, "codeSigning"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 4}, "emailProtection"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 8}, "timeStamping"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 9}, "OCSPSigning"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 1}, "ocsp"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 2}, "caIssuers"},
	{oid.ObjectIdentifier{1, 3, 6, 1, 4, 1, 11129, 2, 4, 2}, "signedCertificateTimestampList"},
}

// Public key and signature algorithms
var algorithms = []entry{
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}, "rsaEncryption"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 5}, "sha1WithRSAEncryption"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 7}, "id-RSAES-OAEP"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 10}, "id-RSASSA-PSS"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}, "sha256WithRSAEncryption"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12}, "sha384WithRSAEncryption"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13}, "sha512WithRSAEncryption"},
	{oid.ObjectIdentifier{1, 2, 840, 10045, 2, 1}, "ecPublicKey"},
	{oid.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}, "prime256v1"},
	{oid.ObjectIdentifier{1, 3, 132, 0, 34}, "secp384r1"},
	{oid.ObjectIdentifier{1, 3, 132, 0, 35}, "secp521r1"},
	{oid.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}, "ecdsa-with-SHA256"},
	{oid.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}, "ecdsa-with-SHA384"},
	{oid.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}, "ecdsa-with-SHA512"},
	{oid.ObjectIdentifier{1, 3, 101, 112}, "Ed25519"},
	{oid.ObjectIdentifier{1, 3, 101, 113}, "Ed448"},
	{oid.ObjectIdentifier{1, 3, 14, 3, 2, 26}, "sha1"},
	{oid.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}, "sha256"},
	{oid.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}, "sha384"},
	{oid.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}, "sha512"},
	{oid.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 2}, "aes128-CBC"},
	{oid.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 42}, "aes256-CBC"},
	{oid.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 6}, "aes128-GCM"},
	{oid.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 46}, "aes256-GCM"},
}

// PKCS #7 / CMS and PKCS #9
var contentTypes = []entry{
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 1}, "data"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}, "signedData"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 3}, "envelopedData"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 3}, "contentType"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 4}, "messageDigest"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 5}, "signingTime"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 14}, "extensionRequest"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 1, 4}, "id-ct-TSTInfo"},
	{oid.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 47}, "signingCertificateV2"},
}

var names = index(attributes, extensions, algorithms, contentTypes)

func index(tables ...[]entry) map[string]string {
	m := make(map[string]string)
	for _, t := range tables {
		for _, e := range t {
			m[e.oid.String()] = e.name
		}
	}
	return m
}

// Lookup returns the descriptive name of the object identifier s given in
// dotted decimal form.
func Lookup(s string) (string, bool) {
	name, ok := names[s]
	return name, ok
}

// Name returns the descriptive name of id, if known.
func Name(id oid.ObjectIdentifier) (string, bool) {
	return Lookup(id.String())
}
