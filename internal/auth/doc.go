// Package auth implements credential verification and the authorization
// gate shared by the editor and contact handlers.
//
// There is no session state: every privileged request carries raw
// credentials in headers and is verified again.
//
//   - [Hasher]: stored hash scheme ([SHA256Hasher] by default)
//   - [EditorAuthenticator], [AdminPasswordAuthenticator]: credential lookup
//   - [Gate]: authentication plus a [Requirement] ([SuperAdmin], [AnyPrincipal])
package auth
