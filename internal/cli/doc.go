// Package cli implements the lexicon command line.
//
//	lexicon                    # start the HTTP server (same as "serve")
//	lexicon enrich apple pear  # enrich words and print the records
//	lexicon refill             # fill in every record missing meanings
//	lexicon provider set yi    # choose the generative provider
package cli
