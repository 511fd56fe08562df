// Package translator answers lookup queries against the indexed MIB store:
// symbolic name to OID, numeric OID to object, and full-text search over
// object names and descriptions.
//
// OID lookups use longest-prefix matching, so instance identifiers such as
// 1.3.6.1.2.1.1.3.0 resolve to sysUpTime with the trailing ".0" reported as
// the instance. Search responses are cached in a bounded LRU with per-entry
// TTL; the cache is purged whenever the index is rebuilt.
package translator
