package sqlinline

const QStatsSummary = `--sql 21a24db7-a339-4268-8f2f-ce0e450e93c6
select
    (select count(*)
       from nodes n
       join roadmaps r on r.id = n.roadmap_id
      where r.user_id = u.id)                                   as nodes_total,
    (select count(*)
       from user_node_progress p
      where p.user_id = u.id
        and p.status = 'completed')                             as nodes_completed,
    (select count(*) from assessments a where a.user_id = u.id) as assessments_taken,
    (select coalesce(avg(a.quiz_score), 0)
       from assessments a
      where a.user_id = u.id)                                   as average_score,
    (select count(*)
       from cover_letters c
      where c.user_id = u.id)                                   as cover_letters,
    u.credits                                                   as credits
from users u
where u.id = $1::uuid;
`
