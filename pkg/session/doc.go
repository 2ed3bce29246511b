/*
Package session manages interactive stepping sessions.

A session owns one live machine that clients advance a few steps at a time,
for example over HTTP. Machines are not safe for concurrent use, so the
Manager serializes every call on a session behind a per-session lock whose
entry is garbage collected once no caller holds it. Sessions live in memory
only and can be expired after a period of inactivity.
*/
package session
