// Package cli implements the uritemplate command-line interface.
//
//	uritemplate expand '{?q,lang}' -v q=cat -v lang=en -v lang=fr
//	uritemplate extract '{/path*}' 0 /a/b
//	uritemplate inspect '{;keys*,id:4}'
//	uritemplate --catalog templates.db catalog add search '{?q,lang}'
//	uritemplate --catalog templates.db expand @search -v q=cat
package cli
