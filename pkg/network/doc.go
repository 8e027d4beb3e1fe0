// Package network defines the typed records that flow through the pathway
// pipeline.
//
// A pathway file yields a node table ([NodeRecord]) and an edge table
// ([EdgeRecord]). The assembler joins each edge with both of its endpoint
// nodes into a [JoinedRecord]; the records of one file form a [Network],
// which is what the pipeline hands to the report writer and storage sinks.
//
// # Types
//
// Source types ([NodeType]) are mapped to a fixed normalized vocabulary
// ([Kind]):
//
//	GENE        -> protein
//	FAMILY      -> proteinfamily
//	COMPLEX     -> complex
//	PROCESS     -> process
//	COMPARTMENT -> compartment
//	(anything)  -> other
//
// proteinfamily, complex and compartment are containers: they group other
// nodes through the PARENT_ID column and carry a MEMBER attribute.
//
// # Identifier Map
//
// [IDMap] translates node ids into display names. It is created once per
// file and passed explicitly to every stage that needs it. Only the
// synthetic namer writes to it.
package network
