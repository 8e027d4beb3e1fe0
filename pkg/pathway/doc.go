// Package pathway tokenizes pathway description files and builds their node
// and edge tables.
//
// A pathway file mixes free-text metadata, a node table and an edge table:
//
//	Glioblastoma: RTK/RAS/PI(3)K
//	Genomic alterations of the RTK/RAS pathway.
//	--NODE_NAME	NODE_ID	NODE_TYPE	PARENT_ID	POSX	POSY--
//	EGFR	1	GENE	3	100	200
//	ERBB2	2	GENE	3	140	200
//	RTK	3	FAMILY	-1	120	180
//
//	--EDGE_ID	SOURCE	TARGET	EDGE_TYPE--
//	e1	1	2	ACTIVATES
//
// [Tokenize] splits the text into regions; [BuildTable] aligns the rows to
// their header; [NodesFromTable] and [EdgesFromTable] produce typed records.
package pathway
